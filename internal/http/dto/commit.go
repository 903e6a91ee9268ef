package dto

type CommitWebhookResponse struct {
	Status     string `json:"status"`
	DeliveryID string `json:"delivery_id"`
	Translator string `json:"translator,omitempty"`
	Commits    int    `json:"commits"`
	Enqueued   int    `json:"enqueued"`
}

type ErrorResponse struct {
	Error      string `json:"error"`
	DeliveryID string `json:"delivery_id,omitempty"`
}
