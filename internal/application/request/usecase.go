package request

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kossodo/merch-api/internal/application/dto"
	"github.com/kossodo/merch-api/internal/domain"
	"github.com/kossodo/merch-api/internal/domain/entity"
	domaininv "github.com/kossodo/merch-api/internal/domain/inventory"
	"github.com/kossodo/merch-api/internal/domain/repository"
)

// RequestUseCase ciclo de vida de las solicitudes: crear, listar y confirmar (pending -> confirmed).
type RequestUseCase struct {
	txRunner         TxRunner
	requestRepo      repository.RequestRepository
	confirmationRepo repository.ConfirmationRepository
	productRepo      repository.ProductRepository
	notifier         Notifier
}

// NewRequestUseCase construye el caso de uso.
func NewRequestUseCase(
	txRunner TxRunner,
	requestRepo repository.RequestRepository,
	confirmationRepo repository.ConfirmationRepository,
	productRepo repository.ProductRepository,
	notifier Notifier,
) *RequestUseCase {
	return &RequestUseCase{
		txRunner:         txRunner,
		requestRepo:      requestRepo,
		confirmationRepo: confirmationRepo,
		productRepo:      productRepo,
		notifier:         notifier,
	}
}

// Create valida, persiste en estado pending y encola la notificación por correo.
func (uc *RequestUseCase) Create(ctx context.Context, in dto.CreateRequestRequest) (int64, error) {
	requester := strings.TrimSpace(in.Requester)
	taxID := strings.TrimSpace(in.TaxID)
	visitDate := strings.TrimSpace(in.VisitDate)
	if requester == "" || strings.TrimSpace(in.Group) == "" || taxID == "" || visitDate == "" {
		return 0, fmt.Errorf("%w: faltan campos requeridos (solicitante, grupo, ruc, fecha_visita)", domain.ErrInvalidInput)
	}
	unit, err := entity.ParseBusinessUnit(in.Group)
	if err != nil {
		return 0, err
	}
	if err := domaininv.ValidatePackCount(int64(in.PackCount)); err != nil {
		return 0, err
	}
	products := entity.Quantities(in.Products).Clone()
	if err := domaininv.ValidateQuantities(products); err != nil {
		return 0, err
	}
	for _, key := range products.Keys() {
		if err := uc.productRepo.Ensure(ctx, &entity.Product{BusinessUnit: unit, Key: key, Name: key}); err != nil {
			return 0, err
		}
	}

	req := &entity.Request{
		Requester:    requester,
		BusinessUnit: unit,
		TaxID:        taxID,
		VisitDate:    visitDate,
		PackCount:    int64(in.PackCount),
		Products:     products,
		Catalogs:     strings.TrimSpace(in.Catalogs),
		Status:       entity.RequestStatusPending,
	}
	if err := uc.requestRepo.Create(ctx, req); err != nil {
		return 0, err
	}
	uc.notifier.Submit(*req)
	return req.ID, nil
}

// List lista solicitudes filtrando opcionalmente por status e id (strings crudos del query).
func (uc *RequestUseCase) List(ctx context.Context, status, id string) ([]dto.RequestResponse, error) {
	filter := repository.RequestFilter{Status: strings.TrimSpace(status)}
	if filter.Status != "" && !entity.IsValidRequestStatus(filter.Status) {
		return nil, fmt.Errorf("%w: status debe ser %q o %q", domain.ErrInvalidInput,
			entity.RequestStatusPending, entity.RequestStatusConfirmed)
	}
	if id = strings.TrimSpace(id); id != "" {
		n, err := ParseID(id)
		if err != nil {
			return nil, err
		}
		filter.ID = &n
	}
	list, err := uc.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRequestResponse(r))
	}
	return out, nil
}

// Get obtiene una solicitud por id.
func (uc *RequestUseCase) Get(ctx context.Context, id int64) (*dto.RequestResponse, error) {
	req, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: solicitud %d", domain.ErrNotFound, id)
	}
	out := toRequestResponse(req)
	return &out, nil
}

// Confirm aplica la transición pending -> confirmed en una sola transacción:
// bloquea la solicitud, inserta la confirmación y cambia el estado. Si algo falla no queda nada a medias.
// Sin cantidades explícitas se confirma lo pedido (packs × unidades por pack).
func (uc *RequestUseCase) Confirm(ctx context.Context, id int64, in dto.ConfirmRequestRequest) (*dto.ConfirmationResponse, error) {
	confirmer := strings.TrimSpace(in.Confirmer)
	if confirmer == "" {
		return nil, fmt.Errorf("%w: confirmado_por es requerido", domain.ErrInvalidInput)
	}
	if err := domaininv.ValidateQuantities(in.Quantities); err != nil {
		return nil, err
	}

	var conf *entity.Confirmation
	err := uc.txRunner.RunConfirm(ctx, func(
		requestRepo repository.RequestRepository,
		confirmationRepo repository.ConfirmationRepository,
		productRepo repository.ProductRepository,
	) error {
		req, err := requestRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return fmt.Errorf("%w: solicitud %d", domain.ErrNotFound, id)
		}
		if !req.IsPending() {
			return fmt.Errorf("%w: la solicitud %d ya está en estado '%s'", domain.ErrConflict, id, req.Status)
		}

		quantities := in.Quantities.Clone()
		if len(quantities) == 0 {
			if quantities, err = req.RequestedTotals(); err != nil {
				return err
			}
			if err := domaininv.ValidateQuantities(quantities); err != nil {
				return err
			}
		}
		for _, key := range quantities.Keys() {
			if err := productRepo.Ensure(ctx, &entity.Product{BusinessUnit: req.BusinessUnit, Key: key, Name: key}); err != nil {
				return err
			}
		}
		conf = &entity.Confirmation{
			RequestID:    req.ID,
			BusinessUnit: req.BusinessUnit,
			Confirmer:    confirmer,
			Observations: strings.TrimSpace(in.Observations),
			Quantities:   quantities,
		}
		if err := confirmationRepo.Create(ctx, conf); err != nil {
			return err
		}
		return requestRepo.MarkConfirmed(ctx, req.ID)
	})
	if err != nil {
		return nil, err
	}
	out := toConfirmationResponse(conf)
	return &out, nil
}

// ListConfirmations lista confirmaciones; grupo vacío = todas las unidades.
func (uc *RequestUseCase) ListConfirmations(ctx context.Context, group string) ([]dto.ConfirmationResponse, error) {
	var unit entity.BusinessUnit
	if strings.TrimSpace(group) != "" {
		u, err := entity.ParseBusinessUnit(group)
		if err != nil {
			return nil, err
		}
		unit = u
	}
	list, err := uc.confirmationRepo.List(ctx, unit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConfirmationResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toConfirmationResponse(c))
	}
	return out, nil
}

// ParseID interpreta el id de una solicitud (entero positivo).
func ParseID(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: id de solicitud %q", domain.ErrInvalidInput, s)
	}
	return n, nil
}

func toRequestResponse(r *entity.Request) dto.RequestResponse {
	products := r.Products
	if products == nil {
		products = entity.Quantities{}
	}
	return dto.RequestResponse{
		ID:          r.ID,
		Requester:   r.Requester,
		Group:       r.BusinessUnit.String(),
		TaxID:       r.TaxID,
		VisitDate:   r.VisitDate,
		PackCount:   r.PackCount,
		Products:    products,
		Catalogs:    r.Catalogs,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		ConfirmedAt: r.ConfirmedAt,
	}
}

func toConfirmationResponse(c *entity.Confirmation) dto.ConfirmationResponse {
	return dto.ConfirmationResponse{
		ID:           c.ID,
		RequestID:    c.RequestID,
		Group:        c.BusinessUnit.String(),
		Confirmer:    c.Confirmer,
		Observations: c.Observations,
		Quantities:   c.Quantities,
		CreatedAt:    c.CreatedAt,
	}
}
