package request_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kossodo/merch-api/internal/application/dto"
	"github.com/kossodo/merch-api/internal/application/request"
	"github.com/kossodo/merch-api/internal/domain"
	"github.com/kossodo/merch-api/internal/domain/entity"
)

type captureRenderer struct {
	conf *entity.Confirmation
}

func (r *captureRenderer) RenderRequestSheet(_ context.Context, _ *entity.Request, conf *entity.Confirmation) ([]byte, error) {
	r.conf = conf
	return []byte("%PDF"), nil
}

func TestDownload_IncluyeConfirmacion(t *testing.T) {
	ctx := context.Background()
	uc, store, _ := newRequestUC()
	id, err := uc.Create(ctx, validCreate())
	require.NoError(t, err)
	_, err = uc.Confirm(ctx, id, dto.ConfirmRequestRequest{Confirmer: "Marta"})
	require.NoError(t, err)

	r := &captureRenderer{}
	sheet := request.NewSheetUseCase(store.Requests(), store.Confirmations(), r)
	out, name, err := sheet.Download(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out))
	assert.Equal(t, "solicitud-1.pdf", name)
	require.NotNil(t, r.conf)
	assert.Equal(t, "Marta", r.conf.Confirmer)
}

func TestDownload_NoExiste(t *testing.T) {
	_, store, _ := newRequestUC()
	sheet := request.NewSheetUseCase(store.Requests(), store.Confirmations(), &captureRenderer{})
	_, _, err := sheet.Download(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
