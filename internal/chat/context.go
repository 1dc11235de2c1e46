package chat

import (
	"encoding/json"
	"fmt"

	"viagens/internal/catalog"
	"viagens/internal/core"
	"viagens/internal/ledger"
)

// TripContext is the data the model answers from.
type TripContext struct {
	Flights    catalog.InternationalFlights `json:"voosInternacionais"`
	Ticket     catalog.TicketDetails        `json:"passageiros"`
	Lodging    []core.LodgingOption         `json:"hoteis"`
	Bus        catalog.BusLogistics         `json:"onibusBrasil"`
	Timeline   []catalog.TimelineStep       `json:"cronogramaConexao"`
	Budget     []core.BudgetEntry           `json:"budgetAtual"`
	TotalSpent float64                      `json:"totalGasto"`
	Tips       []catalog.Tip                `json:"dicas"`
}

func NewTripContext(c *catalog.Catalog, snap ledger.Snapshot) TripContext {
	budget := snap.Entries
	if budget == nil {
		budget = []core.BudgetEntry{}
	}
	return TripContext{
		Flights:    c.Flights,
		Ticket:     c.Ticket,
		Lodging:    c.Accommodations,
		Bus:        c.Bus,
		Timeline:   c.Timeline,
		Budget:     budget,
		TotalSpent: snap.Total,
		Tips:       c.Tips,
	}
}

const instructionTemplate = `Você é o assistente inteligente do app "VIAgens". Você é um especialista em viagens para a África do Sul.

DADOS DA VIAGEM DO USUÁRIO:
%s

REGRAS:
1. Responda de forma concisa, amigável e direta.
2. Use os dados fornecidos para responder perguntas sobre horários, valores, hotéis e voos.
3. Se o usuário perguntar sobre o gasto total, calcule com base no 'budgetAtual' fornecido.
4. Se perguntarem sobre segurança, reforce as dicas de usar Uber e não andar com celular.
5. Seu tom deve ser de um "Concierge de Luxo com IA".
`

// SystemInstruction renders the preamble with the trip data embedded as JSON.
func SystemInstruction(tc TripContext) (string, error) {
	raw, err := json.Marshal(tc)
	if err != nil {
		return "", fmt.Errorf("encode trip context: %w", err)
	}
	return fmt.Sprintf(instructionTemplate, raw), nil
}
