package random

type ConsumerRequest struct {
	Name string `json:"name"`
}

type ConsumersResponse struct {
	Consumers []string `json:"consumers"`
}
