package response

type SyncedServerResponse struct {
	Code     string `json:"code"`
	Action   string `json:"action"`
	Online   bool   `json:"online"`
	ServerID string `json:"server_id,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
	Error    string `json:"error,omitempty"`
}

type SyncResponse struct {
	GameID        string                 `json:"game_id"`
	Total         int                    `json:"total"`
	Created       int                    `json:"created"`
	Updated       int                    `json:"updated"`
	Unchanged     int                    `json:"unchanged"`
	Skipped       int                    `json:"skipped"`
	Failed        int                    `json:"failed"`
	PublishFailed int                    `json:"publish_failed"`
	Servers       []SyncedServerResponse `json:"servers"`
}
