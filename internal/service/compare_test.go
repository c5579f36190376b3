package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/globaldefense/index-server/internal/domain"
	domainerrors "github.com/globaldefense/index-server/internal/errors"
	"github.com/globaldefense/index-server/internal/generate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCompare(t *testing.T, producer *stubProducer) (*CompareService, *DomainService) {
	t.Helper()
	nations, _ := setupDomain(t, domain.KindNations)
	return NewCompareService(nations, producer, slog.New(slog.DiscardHandler)), nations
}

func TestCompare_Success(t *testing.T) {
	producer := &stubProducer{comparison: &generate.Comparison{
		Analysis: "Overwhelming logistics advantage.",
		Winner:   "United States",
		Factors:  []string{"air power", "naval reach"},
	}}
	svc, nations := setupCompare(t, producer)
	seedNations(t, nations)

	result, err := svc.Compare(context.Background(), "usa", "rus")
	require.NoError(t, err)

	assert.Equal(t, "usa", result.First.ID)
	assert.Equal(t, "rus", result.Second.ID)
	assert.Equal(t, "United States", result.Comparison.Winner)
	assert.Equal(t, 1, producer.compareCall)
}

func TestCompare_SameEntity(t *testing.T) {
	producer := &stubProducer{}
	svc, nations := setupCompare(t, producer)
	seedNations(t, nations)

	_, err := svc.Compare(context.Background(), "usa", "usa")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	assert.Zero(t, producer.compareCall)
}

func TestCompare_UnknownEntity(t *testing.T) {
	svc, nations := setupCompare(t, &stubProducer{})
	seedNations(t, nations)

	_, err := svc.Compare(context.Background(), "usa", "zzz")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCompare_ProducerErrorPropagates(t *testing.T) {
	producer := &stubProducer{compareErr: domainerrors.TransportInterrupted("model unavailable")}
	svc, nations := setupCompare(t, producer)
	seedNations(t, nations)

	_, err := svc.Compare(context.Background(), "usa", "rus")
	assert.ErrorIs(t, err, domainerrors.ErrTransportInterrupted)
}
