package registry

import (
	health_prober "GameHub_Monitor/internal/health-prober"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ServerEntry is one configured server of a game. ID is the server code.
type ServerEntry struct {
	ID         string                   `json:"id" yaml:"id" validate:"required,max=64"`
	Name       string                   `json:"name,omitempty" yaml:"name"`
	Host       string                   `json:"host" yaml:"host" validate:"required,hostname_rfc1123|ip"`
	Port       int                      `json:"port" yaml:"port" validate:"required,min=1,max=65535"`
	Check      *health_prober.HTTPCheck `json:"check,omitempty" yaml:"check"`
	Attributes map[string]interface{}   `json:"attributes,omitempty" yaml:"attributes"`
}

func (e ServerEntry) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

func (e ServerEntry) Target() health_prober.Target {
	return health_prober.Target{
		Host: e.Host,
		Port: e.Port,
		HTTP: e.Check,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (e ServerEntry) Validate() error {
	return validate.Struct(e)
}

// Source provides the declarative server list of each game.
type Source interface {
	Games() []string
	Entries(gameID string) ([]ServerEntry, bool)
}

type fileDocument struct {
	Games map[string][]ServerEntry `yaml:"games"`
}

type staticSource struct {
	games map[string][]ServerEntry
}

func (s *staticSource) Games() []string {
	games := make([]string, 0, len(s.games))
	for g := range s.games {
		games = append(games, g)
	}
	sort.Strings(games)
	return games
}

func (s *staticSource) Entries(gameID string) ([]ServerEntry, bool) {
	entries, ok := s.games[gameID]
	return entries, ok
}

func NewStaticSource(games map[string][]ServerEntry) Source {
	return &staticSource{games: games}
}

// Parse decodes a registry document of the form:
//
//	games:
//	  <game_id>:
//	    - id: eu-1
//	      host: 10.0.0.1
//	      port: 27015
//	      check: {path: /health, expected_status: [200, 204]}
//	      attributes: {region: eu}
func Parse(data []byte) (Source, error) {
	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("registry.Parse: %w", err)
	}
	for game, entries := range doc.Games {
		seen := make(map[string]struct{}, len(entries))
		for i, entry := range entries {
			if err := entry.Validate(); err != nil {
				return nil, fmt.Errorf("registry.Parse: game %s entry %d: %w", game, i, err)
			}
			if _, dup := seen[entry.ID]; dup {
				return nil, fmt.Errorf("registry.Parse: game %s: duplicate server id %s", game, entry.ID)
			}
			seen[entry.ID] = struct{}{}
		}
	}
	return NewStaticSource(doc.Games), nil
}

func LoadFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry.LoadFile: %w", err)
	}
	return Parse(data)
}
