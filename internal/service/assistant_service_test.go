package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/aifa-contracts/internal/assistant"
	"github.com/nurpe/aifa-contracts/internal/format"
	"github.com/nurpe/aifa-contracts/internal/model"
)

func newAssistantService(generator AnswerGenerator, budget *fakeBudgetStore) *AssistantService {
	contracts := &fakeContractStore{contracts: []model.Contract{
		{ID: 1, Status: model.ContractStatusActive},
		{ID: 2, Status: model.ContractStatusActive},
		{ID: 3, Status: model.ContractStatusExpired},
	}}
	dashboard := NewDashboardService(contracts, &fakeSpaceStore{}, budget, true, zerolog.Nop())
	return NewAssistantService(dashboard, generator, format.NewFormatter("en-US"), zerolog.Nop())
}

func TestAssistantService_EmptyQuestionMakesNoCall(t *testing.T) {
	generator := &fakeGenerator{answer: "ok"}
	svc := newAssistantService(generator, &fakeBudgetStore{})

	_, err := svc.Ask(context.Background(), "   ")

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, generator.calls)
}

func TestAssistantService_ContextCarriesCurrentCounts(t *testing.T) {
	generator := &fakeGenerator{answer: "Hay 2 contratos activos."}
	budget := &fakeBudgetStore{items: []model.BudgetItem{
		{ID: 1, OrgUnit: "Operaciones", RequestedAmount: amount(1000)},
		{ID: 2, OrgUnit: "Seguridad", RequestedAmount: amount(250.5)},
	}}
	svc := newAssistantService(generator, budget)

	answer, err := svc.Ask(context.Background(), "¿Cuántos contratos activos hay?")
	require.NoError(t, err)

	assert.False(t, answer.Failed)
	assert.Equal(t, "Hay 2 contratos activos.", answer.Text)
	require.Equal(t, 1, generator.calls)
	ctx := generator.contexts[0]
	assert.Contains(t, ctx, "Contratos: total 3, activos 2, por vencer 0, vencidos 1, cancelados 0.")
	assert.Contains(t, ctx, "Presupuesto PAAS: 2 partidas, monto solicitado $1,250.50")
	assert.Contains(t, ctx, "Operaciones ($1,000.00)")
	assert.Contains(t, ctx, "Total de Vuelos Listados: 6. Vuelos Demorados: 1.")
	assert.Contains(t, ctx, "VB-201 a Monterrey (MTY) está Demorado")
}

func TestAssistantService_ErrorAnswers(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing key", assistant.ErrMissingAPIKey, AnswerMissingKey},
		{"empty answer", fmt.Errorf("wrap: %w", assistant.ErrEmptyAnswer), AnswerEmpty},
		{"endpoint failure", errStore, AnswerFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAssistantService(&fakeGenerator{err: tt.err}, &fakeBudgetStore{})

			answer, err := svc.Ask(context.Background(), "hola")
			require.NoError(t, err)

			assert.True(t, answer.Failed)
			assert.Equal(t, tt.want, answer.Text)
		})
	}
}

func TestAssistantService_OverviewFailure(t *testing.T) {
	generator := &fakeGenerator{answer: "ok"}
	svc := newAssistantService(generator, &fakeBudgetStore{listErr: errStore})

	answer, err := svc.Ask(context.Background(), "hola")
	require.NoError(t, err)

	assert.True(t, answer.Failed)
	assert.Equal(t, AnswerFailure, answer.Text)
	assert.Zero(t, generator.calls)
}
