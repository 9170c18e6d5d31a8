package entregas

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vialsa/backend/internal/domain/entregas"
	"github.com/vialsa/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MovimientosCache caches the available-movements catalog per sede and
// date. Implementations return (nil, nil) on a cache miss; cache failures
// must never break the flow, only degrade it.
type MovimientosCache interface {
	Get(ctx context.Context, sedeID uuid.UUID, fecha time.Time) (*entregas.MovimientosDisponibles, error)
	Set(ctx context.Context, sedeID uuid.UUID, fecha time.Time, catalogo entregas.MovimientosDisponibles) error
	Invalidate(ctx context.Context, sedeID uuid.UUID, fecha time.Time) error
}

// EntregaService provides application-level cash-delivery operations
type EntregaService struct {
	ordenRepo     entregas.OrdenRepository
	abonoRepo     entregas.AbonoRepository
	reembolsoRepo entregas.ReembolsoRepository
	entregaRepo   entregas.EntregaRepository
	uow           entregas.UnitOfWork
	cache         MovimientosCache
	logger        *zap.Logger
}

// NewEntregaService creates a new EntregaService. Reads go through the
// plain repositories; registering and voiding deliveries go through the
// unit of work. The cache is optional; pass nil to always hit the
// repositories.
func NewEntregaService(
	ordenRepo entregas.OrdenRepository,
	abonoRepo entregas.AbonoRepository,
	reembolsoRepo entregas.ReembolsoRepository,
	entregaRepo entregas.EntregaRepository,
	uow entregas.UnitOfWork,
	cache MovimientosCache,
	logger *zap.Logger,
) *EntregaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntregaService{
		ordenRepo:     ordenRepo,
		abonoRepo:     abonoRepo,
		reembolsoRepo: reembolsoRepo,
		entregaRepo:   entregaRepo,
		uow:           uow,
		cache:         cache,
		logger:        logger,
	}
}

// MovimientosDisponibles returns the catalog of movements eligible for a
// delivery on the given sede and date, served from cache when possible.
func (s *EntregaService) MovimientosDisponibles(ctx context.Context, sedeID uuid.UUID, fecha time.Time) (*MovimientosDisponiblesResponse, error) {
	if sedeID == uuid.Nil {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Sede is required")
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, sedeID, fecha)
		if err != nil {
			s.logger.Warn("movimientos cache read failed", zap.Error(err))
		} else if cached != nil {
			return toMovimientosResponse(sedeID, fecha, *cached), nil
		}
	}

	catalogo, err := s.fetchCatalogo(ctx, sedeID, fecha)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, sedeID, fecha, catalogo); err != nil {
			s.logger.Warn("movimientos cache write failed", zap.Error(err))
		}
	}

	return toMovimientosResponse(sedeID, fecha, catalogo), nil
}

// PreviewEntrega computes the reconciliation for a selection without
// persisting anything. The UI calls this on every selection change; the
// result is discarded on submit or close.
func (s *EntregaService) PreviewEntrega(ctx context.Context, req PreviewEntregaRequest) (*ReconciliationResponse, error) {
	catalogo, err := s.fetchCatalogo(ctx, req.SedeID, req.Fecha)
	if err != nil {
		return nil, err
	}

	input, err := entregas.BuildInput(catalogo, req.Seleccion.toDomain())
	if err != nil {
		return nil, err
	}

	result := entregas.ComputeReconciliation(input)
	return toReconciliationResponse(result), nil
}

// CrearEntrega registers a delivery. The catalog is refetched from the
// repositories (never the cache) so a selection consumed by a concurrent
// session is rejected with a STALE_SELECTION error instead of delivered
// twice.
func (s *EntregaService) CrearEntrega(ctx context.Context, req CrearEntregaRequest) (*EntregaResponse, error) {
	if req.Seleccion.toDomain().IsEmpty() {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "At least one movement must be selected")
	}

	catalogo, err := s.fetchCatalogo(ctx, req.SedeID, req.Fecha)
	if err != nil {
		return nil, err
	}

	seleccion := req.Seleccion.toDomain()
	input, err := entregas.BuildInput(catalogo, seleccion)
	if err != nil {
		return nil, err
	}

	result := entregas.ComputeReconciliation(input)
	if len(result.Warnings) > 0 {
		s.logger.Info("reconciliation degraded",
			zap.String("sede_id", req.SedeID.String()),
			zap.Strings("warnings", result.Warnings))
	}

	numero, err := s.entregaRepo.GenerateNumeroEntrega(ctx)
	if err != nil {
		return nil, err
	}

	entrega, err := entregas.NewEntrega(numero, req.SedeID, req.EmpleadoID, req.Fecha, seleccion, result)
	if err != nil {
		return nil, err
	}
	if req.Observaciones != "" {
		entrega.SetObservaciones(req.Observaciones)
	}

	// The delivery and the movements it consumes commit together; a
	// movement grabbed by a concurrent session aborts the whole write.
	err = s.uow.WithinTransaction(ctx, func(repos entregas.TxRepositories) error {
		if err := repos.Entregas.Save(ctx, entrega); err != nil {
			return err
		}
		if len(seleccion.OrdenesIDs) > 0 {
			if err := repos.Ordenes.MarcarEntregadas(ctx, seleccion.OrdenesIDs, entrega.ID); err != nil {
				return err
			}
		}
		if len(seleccion.AbonosIDs) > 0 {
			if err := repos.Abonos.MarcarEntregados(ctx, seleccion.AbonosIDs, entrega.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCatalogo(ctx, req.SedeID, req.Fecha)

	return toEntregaResponse(entrega), nil
}

// GetEntrega gets a delivery by ID
func (s *EntregaService) GetEntrega(ctx context.Context, id uuid.UUID) (*EntregaResponse, error) {
	entrega, err := s.entregaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entrega == nil {
		return nil, shared.ErrNotFound
	}
	return toEntregaResponse(entrega), nil
}

// ListEntregas lists deliveries with filtering and pagination
func (s *EntregaService) ListEntregas(ctx context.Context, filter ListEntregasFilter) (*shared.Paginated[EntregaResponse], error) {
	domainFilter := entregas.EntregaFilter{
		SedeID:    filter.SedeID,
		FechaFrom: filter.FechaFrom,
		FechaTo:   filter.FechaTo,
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "fecha_entrega",
			OrderDir: "desc",
		},
	}
	if filter.Estado != "" {
		estado := entregas.EstadoEntrega(filter.Estado)
		if !estado.IsValid() {
			return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "Unknown delivery state: "+filter.Estado)
		}
		domainFilter.Estado = &estado
	}

	items, total, err := s.entregaRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]EntregaResponse, len(items))
	for i := range items {
		responses[i] = *toEntregaResponse(&items[i])
	}
	paginated := shared.NewPaginated(responses, total, domainFilter.Filter.Page, domainFilter.Filter.PageSize)
	return &paginated, nil
}

// AnularEntrega voids a registered delivery and releases its movements back
// to the available pool.
func (s *EntregaService) AnularEntrega(ctx context.Context, id uuid.UUID, motivo string) (*EntregaResponse, error) {
	entrega, err := s.entregaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entrega == nil {
		return nil, shared.ErrNotFound
	}

	if err := entrega.Anular(motivo); err != nil {
		return nil, err
	}

	// Voiding and releasing the movements back to the pool is one write.
	err = s.uow.WithinTransaction(ctx, func(repos entregas.TxRepositories) error {
		if err := repos.Entregas.Save(ctx, entrega); err != nil {
			return err
		}
		if err := repos.Ordenes.LiberarEntrega(ctx, entrega.ID); err != nil {
			return err
		}
		return repos.Abonos.LiberarEntrega(ctx, entrega.ID)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCatalogo(ctx, entrega.SedeID, entrega.FechaEntrega)

	return toEntregaResponse(entrega), nil
}

// fetchCatalogo loads the eligible movements straight from the repositories.
func (s *EntregaService) fetchCatalogo(ctx context.Context, sedeID uuid.UUID, fecha time.Time) (entregas.MovimientosDisponibles, error) {
	ordenes, err := s.ordenRepo.FindDisponibles(ctx, sedeID, fecha)
	if err != nil {
		return entregas.MovimientosDisponibles{}, err
	}
	abonos, err := s.abonoRepo.FindDisponibles(ctx, sedeID, fecha)
	if err != nil {
		return entregas.MovimientosDisponibles{}, err
	}
	reembolsos, err := s.reembolsoRepo.FindBySedeAndFecha(ctx, sedeID, fecha)
	if err != nil {
		return entregas.MovimientosDisponibles{}, err
	}

	catalogo := entregas.MovimientosDisponibles{
		Ordenes:    ordenes,
		Abonos:     abonos,
		Reembolsos: reembolsos,
	}
	return catalogo.Elegibles(fecha), nil
}

func (s *EntregaService) invalidateCatalogo(ctx context.Context, sedeID uuid.UUID, fecha time.Time) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, sedeID, fecha); err != nil {
		s.logger.Warn("movimientos cache invalidation failed", zap.Error(err))
	}
}
