package health_prober

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

type ProbeMethod string

const (
	MethodHTTP ProbeMethod = "http"
	MethodTCP  ProbeMethod = "tcp"
)

const (
	DefaultTimeout  = 2 * time.Second
	defaultProtocol = "http"
	defaultPath     = "/health"
	defaultHTTPPort = 80
)

// StatusList accepts either a single status code or a list of them.
type StatusList []int

func (s *StatusList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var code int
		if err := value.Decode(&code); err != nil {
			return fmt.Errorf("StatusList.UnmarshalYAML: %w", err)
		}
		*s = StatusList{code}
		return nil
	}
	var codes []int
	if err := value.Decode(&codes); err != nil {
		return fmt.Errorf("StatusList.UnmarshalYAML: %w", err)
	}
	*s = codes
	return nil
}

func (s *StatusList) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err == nil {
		*s = StatusList{code}
		return nil
	}
	var codes []int
	if err := json.Unmarshal(data, &codes); err != nil {
		return fmt.Errorf("StatusList.UnmarshalJSON: %w", err)
	}
	*s = codes
	return nil
}

// HTTPCheck describes how to probe a server over HTTP. Zero fields take defaults.
type HTTPCheck struct {
	Protocol       string     `json:"protocol,omitempty" yaml:"protocol"`
	Path           string     `json:"path,omitempty" yaml:"path"`
	ExpectedStatus StatusList `json:"expected_status,omitempty" yaml:"expected_status"`
	TimeoutMs      int        `json:"timeout_ms,omitempty" yaml:"timeout_ms"`
}

func (c HTTPCheck) accepts(status int) bool {
	if len(c.ExpectedStatus) == 0 {
		return status >= 200 && status <= 299
	}
	for _, s := range c.ExpectedStatus {
		if s == status {
			return true
		}
	}
	return false
}

type Target struct {
	Host string
	Port int
	// Method is derived from HTTP when empty: HTTP when a check is set, TCP otherwise.
	Method ProbeMethod
	HTTP   *HTTPCheck
}

func (t Target) method() ProbeMethod {
	if t.Method != "" {
		return t.Method
	}
	if t.HTTP != nil {
		return MethodHTTP
	}
	return MethodTCP
}

type Result struct {
	Online      bool
	Method      ProbeMethod
	MetricName  *string
	MetricValue *float64
	MetricUnit  *string
	HTTPStatus  *int
	Detail      *string
	CheckedAt   time.Time
}
