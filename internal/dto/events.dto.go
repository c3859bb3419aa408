package dto

// Push message types sent over the notification channel.
const (
	EventUpdate   = "update"
	EventNewJob   = "new_job"
	EventProposal = "proposal"
)

type RequestEvent struct {
	Type    string      `json:"type"`
	Request RequestView `json:"request"`
}

type ProposalEvent struct {
	Type     string       `json:"type"`
	Proposal ProposalView `json:"proposal"`
	Request  RequestView  `json:"request"`
}
