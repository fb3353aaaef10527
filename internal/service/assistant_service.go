package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nurpe/aifa-contracts/internal/assistant"
	"github.com/nurpe/aifa-contracts/internal/format"
	"github.com/nurpe/aifa-contracts/internal/model"
)

const (
	AnswerMissingKey = "Error: API Key no configurada."
	AnswerFailure    = "No se pueden generar insights en este momento. Verifique la conexión."
	AnswerEmpty      = "No se pudo generar una respuesta."
)

type AnswerGenerator interface {
	Generate(ctx context.Context, contextData, question string) (string, error)
}

type Answer struct {
	Question string `json:"question"`
	Text     string `json:"text"`
	Failed   bool   `json:"failed"`
}

// AssistantService answers free-text questions with the current dashboard
// figures as context. Queries are independent of each other.
type AssistantService struct {
	dashboard *DashboardService
	generator AnswerGenerator
	money     *format.Formatter
	log       zerolog.Logger
}

func NewAssistantService(dashboard *DashboardService, generator AnswerGenerator, money *format.Formatter, log zerolog.Logger) *AssistantService {
	return &AssistantService{
		dashboard: dashboard,
		generator: generator,
		money:     money,
		log:       log,
	}
}

func (s *AssistantService) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", ErrInvalidInput)
	}

	overview, err := s.dashboard.Overview(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("assistant context unavailable")
		return &Answer{Question: question, Text: AnswerFailure, Failed: true}, nil
	}
	contextData := s.BuildContext(*overview, s.dashboard.ListFlights().Items)

	text, err := s.generator.Generate(ctx, contextData, question)
	switch {
	case errors.Is(err, assistant.ErrMissingAPIKey):
		return &Answer{Question: question, Text: AnswerMissingKey, Failed: true}, nil
	case errors.Is(err, assistant.ErrEmptyAnswer):
		return &Answer{Question: question, Text: AnswerEmpty, Failed: true}, nil
	case err != nil:
		s.log.Error().Err(err).Msg("assistant query failed")
		return &Answer{Question: question, Text: AnswerFailure, Failed: true}, nil
	}
	return &Answer{Question: question, Text: text}, nil
}

// BuildContext summarizes current counts and sums in Spanish.
func (s *AssistantService) BuildContext(overview model.Overview, flights []model.FlightOperation) string {
	var b strings.Builder

	c := overview.Contracts
	fmt.Fprintf(&b, "Contratos: total %d, activos %d, por vencer %d, vencidos %d, cancelados %d.",
		c.Total, c.Active, c.Expiring, c.Expired, c.Cancelled)
	if overview.ContractSource == model.DataSourceFallback {
		b.WriteString(" (datos de respaldo)")
	}

	budget := overview.Budget
	fmt.Fprintf(&b, "\nPresupuesto PAAS: %d partidas, monto solicitado %s, monto modificado %s.",
		budget.ItemCount, s.money.Amount(budget.TotalRequested), s.money.Amount(budget.TotalRevised))
	if len(budget.ByUnit) > 0 {
		units := budget.ByUnit
		if len(units) > 3 {
			units = units[:3]
		}
		parts := make([]string, 0, len(units))
		for _, u := range units {
			parts = append(parts, fmt.Sprintf("%s (%s)", u.OrgUnit, s.money.Amount(u.Amount)))
		}
		b.WriteString(" Áreas con mayor monto: " + strings.Join(parts, ", ") + ".")
	}

	sp := overview.Spaces
	fmt.Fprintf(&b, "\nLocales comerciales: %d (ocupados %d, disponibles %d, en mantenimiento %d), renta mensual ocupada %s.",
		sp.Total, sp.Occupied, sp.Available, sp.Maintenance, s.money.Amount(sp.MonthlyRent))
	if overview.SpaceSource == model.DataSourceFallback {
		b.WriteString(" (datos de respaldo)")
	}

	fmt.Fprintf(&b, "\nTotal de Vuelos Listados: %d. Vuelos Demorados: %d.", overview.Flights.Total, overview.Flights.Delayed)
	if len(flights) > 0 {
		recent := make([]string, 0, len(flights))
		for _, f := range flights {
			recent = append(recent, fmt.Sprintf("%s a %s está %s", f.FlightNumber, f.Destination, f.Status.Label()))
		}
		b.WriteString(" Vuelos Recientes: " + strings.Join(recent, ", ") + ".")
	}

	return b.String()
}
