package response

import "donation_interface/internal/usecase"

type GatewayResponse struct {
	Identifier        string   `json:"identifier"`
	Name              string   `json:"name"`
	CommunicationType string   `json:"communication_type"`
	Transactions      []string `json:"transactions"`
}

func FromGatewaySummaries(gs []usecase.GatewaySummary) []GatewayResponse {
	out := make([]GatewayResponse, 0, len(gs))
	for _, g := range gs {
		out = append(out, GatewayResponse{
			Identifier:        g.Identifier,
			Name:              g.Name,
			CommunicationType: string(g.CommunicationType),
			Transactions:      g.Transactions,
		})
	}
	return out
}
