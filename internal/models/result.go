package models

type EvaluateResponse struct {
	Success    bool        `json:"success"`
	Evaluation *Evaluation `json:"evaluation"`
}

type HistoryResponse struct {
	Success     bool         `json:"success"`
	Evaluations []Evaluation `json:"evaluations"`
}

type ResultResponse struct {
	Success    bool        `json:"success"`
	Evaluation *Evaluation `json:"evaluation"`
}
