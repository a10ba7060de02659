package inventory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitastock/vitastock-api/internal/application/inventory"
	"github.com/vitastock/vitastock-api/internal/domain"
	"github.com/vitastock/vitastock-api/internal/domain/entity"
	"github.com/vitastock/vitastock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore simula el comportamiento relevante de PostgreSQL para el motor:
//   - memTxRunner.Run toma un mutex durante toda la transacción (equivale al
//     lock de fila de SELECT FOR UPDATE: un escritor concurrente espera)
//   - si fn devuelve error se restaura el snapshot previo (rollback)
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	batches   map[string]*entity.Batch
	movements []*entity.Movement
	locations map[string]*entity.Location

	failGetOrCreate bool // fuerza fallo al resolver el lote destino
	failCreateMov   bool // fuerza fallo al persistir el movimiento
}

func newMemStore() *memStore {
	return &memStore{
		batches:   make(map[string]*entity.Batch),
		locations: make(map[string]*entity.Location),
	}
}

func (s *memStore) snapshot() (map[string]*entity.Batch, []*entity.Movement) {
	b := make(map[string]*entity.Batch, len(s.batches))
	for id, batch := range s.batches {
		cp := *batch
		b[id] = &cp
	}
	m := make([]*entity.Movement, len(s.movements))
	copy(m, s.movements)
	return b, m
}

// memTxRunner serializa transacciones y deshace los cambios si fn falla.
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(
	batchRepo repository.BatchRepository,
	movRepo repository.MovementRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	batches, movements := r.s.snapshot()
	err := fn(&memBatchRepo{s: r.s, inTx: true}, &memMovementRepo{s: r.s})
	if err != nil {
		r.s.batches = batches
		r.s.movements = movements
	}
	return err
}

type memBatchRepo struct {
	s    *memStore
	inTx bool // dentro de Run el mutex ya está tomado
}

func (r *memBatchRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *memBatchRepo) Create(b *entity.Batch) error {
	defer r.lock()()
	cp := *b
	r.s.batches[b.ID] = &cp
	return nil
}

func (r *memBatchRepo) GetByID(id string) (*entity.Batch, error) {
	defer r.lock()()
	b, ok := r.s.batches[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *memBatchRepo) GetForUpdate(id string) (*entity.Batch, error) {
	return r.GetByID(id)
}

func (r *memBatchRepo) GetOrCreateForUpdate(productID, lotCode string, expiryDate time.Time, locationID string) (*entity.Batch, error) {
	defer r.lock()()
	if r.s.failGetOrCreate {
		return nil, fmt.Errorf("resolver lote destino: conexión perdida")
	}
	for _, b := range r.s.batches {
		if b.ProductID == productID && b.LotCode == lotCode && b.LocationID == locationID {
			cp := *b
			return &cp, nil
		}
	}
	nb := &entity.Batch{
		ID:         uuid.New().String(),
		ProductID:  productID,
		LotCode:    lotCode,
		ExpiryDate: expiryDate,
		Quantity:   0,
		LocationID: locationID,
		CreatedAt:  time.Now(),
	}
	r.s.batches[nb.ID] = nb
	cp := *nb
	return &cp, nil
}

func (r *memBatchRepo) SetQuantity(id string, quantity int64) error {
	defer r.lock()()
	b, ok := r.s.batches[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Quantity = quantity
	return nil
}

func (r *memBatchRepo) Update(b *entity.Batch) error {
	defer r.lock()()
	cp := *b
	r.s.batches[b.ID] = &cp
	return nil
}

func (r *memBatchRepo) Delete(id string) error {
	defer r.lock()()
	delete(r.s.batches, id)
	return nil
}

func (r *memBatchRepo) List(repository.BatchFilter) ([]repository.BatchListItem, error) {
	return nil, nil
}

func (r *memBatchRepo) ListByProduct(string) ([]*entity.Batch, error) { return nil, nil }

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.Movement) error {
	if r.s.failCreateMov {
		return fmt.Errorf("insert movement: conexión perdida")
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(string) (*entity.Movement, error) { return nil, nil }
func (r *memMovementRepo) List(int, int) ([]repository.MovementListItem, error) {
	return nil, nil
}
func (r *memMovementRepo) ListByBatch(string, int, int) ([]repository.MovementListItem, error) {
	return nil, nil
}
func (r *memMovementRepo) CountByBatch(string) (int64, error) { return 0, nil }

type memLocationRepo struct{ s *memStore }

func (r *memLocationRepo) Create(l *entity.Location) error { r.s.locations[l.ID] = l; return nil }
func (r *memLocationRepo) GetByID(id string) (*entity.Location, error) {
	l, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	return l, nil
}
func (r *memLocationRepo) List() ([]*entity.Location, error) { return nil, nil }
func (r *memLocationRepo) Update(*entity.Location) error     { return nil }
func (r *memLocationRepo) Delete(string) error               { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	locDespensa = "loc-despensa"
	locNevera   = "loc-nevera"
)

func newEngine(t *testing.T, s *memStore) *inventory.ApplyMovementUseCase {
	t.Helper()
	s.locations[locDespensa] = &entity.Location{ID: locDespensa, Name: "Despensa", LocationType: entity.LocationTypeShelf}
	s.locations[locNevera] = &entity.Location{ID: locNevera, Name: "Nevera", LocationType: entity.LocationTypeFridge}
	return inventory.NewApplyMovementUseCase(
		&memTxRunner{s: s},
		&memBatchRepo{s: s},
		&memLocationRepo{s: s},
	)
}

func seedBatch(s *memStore, id string, qty int64) *entity.Batch {
	b := &entity.Batch{
		ID:         id,
		ProductID:  "prod-yogur",
		LotCode:    "L-2024-07",
		ExpiryDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Quantity:   qty,
		LocationID: locDespensa,
	}
	s.batches[id] = b
	return b
}

func quantityOf(t *testing.T, s *memStore, id string) int64 {
	t.Helper()
	b, ok := s.batches[id]
	require.True(t, ok, "el lote %s debe existir", id)
	return b.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación estructural (sin tocar el store)
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_CantidadMenorAUno_RechazaSinPersistir(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1", 10)
	uc := newEngine(t, s)

	for _, qty := range []int64{0, -3} {
		_, err := uc.Apply(context.Background(), inventory.MovementInputDTO{
			BatchID: "b1", Type: entity.MovementTypeOUT, Quantity: qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
	assert.EqualValues(t, 10, quantityOf(t, s, "b1"), "el lote no debe mutar")
	assert.Empty(t, s.movements, "no debe registrarse ningún movimiento")
}

func TestApply_TipoDesconocido_Rechaza(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1", 10)
	uc := newEngine(t, s)

	_, err := uc.Apply(context.Background(), inventory.MovementInputDTO{
		BatchID: "b1", Type: "PRESTAMO", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_TransferSinDestino_Rechaza(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1", 10)
	uc := newEngine(t, s)

	_, err := uc.Apply(context.Background(), inventory.MovementInputDTO{
		BatchID: "b1", Type: entity.MovementTypeTRANSFER, Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDestination)
	assert.Empty(t, s.movements)
}

func TestApply_LoteInexistente_NotFound(t *testing.T) {
	s := newMemStore()
	uc := newEngine(t, s)

	_, err := uc.Apply(context.Background(), inventory.MovementInputDTO{
		BatchID: "no-existe", Type: entity.MovementTypeIN, Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Deltas por tipo
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_IN_SumaCantidad(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1", 10)
	uc := newEngine(t, s)

	res, err := uc.Apply(context.Background(), inventory.MovementInputDTO{
		UserID: "u1", BatchID: "b1", Type: entity.MovementTypeIN, Quantity: 5,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 15, res.Source.Quantity)
	assert.EqualValues(t, 15, quantityOf(t, s, "b1"))
	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.MovementTypeIN, s.movements[0].MovementType)
	assert.NotEmpty(t, res.Movement.ID, "el movimiento confirmado debe tener identidad")
	assert.False(t, res.Movement.CreatedAt.IsZero(), "el movimiento confirmado debe tener timestamp")
}

func TestApply_OUT_DescuentaCantidad(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1", 10)
	uc := newEngine(t, s)

	res, err := uc.Apply(context.Background(), inventory.MovementInputDTO{
		BatchID: "b1", Type: entity.MovementTypeOUT, Quantity: 4,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 6, res.Source.Quantity)
}

func TestApply_WASTE_DescuentaComoSalida(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1", 10)
	uc := newEngine(t, s)

	res, err := uc.Apply(context.Background(), inventory.MovementInputDTO{
		BatchID: "b1", Type: entity.MovementTypeWASTE, Quantity: 10,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.Source.Quantity, "merma total deja el lote en cero, nunca negativo")
}

func TestApply_OUT_SobregiroRechazadoSinMutar(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1", 15)
	uc := newEngine(t, s)

	_, err := uc.Apply(context.Background(), inventory.MovementInputDTO{
		BatchID: "b1", Type: entity.MovementTypeOUT, Quantity: 20,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 15, quantityOf(t, s, "b1"), "el rechazo no debe mutar el lote")
	assert.Empty(t, s.movements, "el rechazo no debe dejar rastro en el libro")

	// Repetir el rechazo es idempotente: sigue sin mutar nada.
	_, err = uc.Apply(context.Background(), inventory.MovementInputDTO{
		BatchID: "b1", Type: entity.MovementTypeOUT, Quantity: 20,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 15, quantityOf(t, s, "b1"))
}

func TestApply_ADJUST_CorreccionAbsoluta(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1", 10)
	uc := newEngine(t, s)

	// ADJUST fija la cantidad, no suma: un conteo físico encontró 3 unidades.
	res, err := uc.Apply(context.Background(), inventory.MovementInputDTO{
		BatchID: "b1", Type: entity.MovementTypeADJUST, Quantity: 3,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Source.Quantity)

	// También puede corregir hacia arriba.
	res, err = uc.Apply(context.Background(), inventory.MovementInputDTO{
		BatchID: "b1", Type: entity.MovementTypeADJUST, Quantity: 40,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 40, res.Source.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// TRANSFER
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_Transfer_CreaLoteDestinoYConserva(t *testing.T) {
	s := newMemStore()
	src := seedBatch(s, "b1", 10)
	uc := newEngine(t, s)

	res, err := uc.Apply(context.Background(), inventory.MovementInputDTO{
		BatchID: "b1", Type: entity.MovementTypeTRANSFER, Quantity: 4,
		DestinationLocationID: locNevera,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Destination, "TRANSFER debe devolver el lote destino")

	assert.EqualValues(t, 6, res.Source.Quantity)
	assert.EqualValues(t, 4, res.Destination.Quantity)
	// Mismo producto, lote y vencimiento; solo cambia la ubicación.
	assert.Equal(t, src.ProductID, res.Destination.ProductID)
	assert.Equal(t, src.LotCode, res.Destination.LotCode)
	assert.Equal(t, src.ExpiryDate, res.Destination.ExpiryDate)
	assert.Equal(t, locNevera, res.Destination.LocationID)
	// Conservación: la suma de ambos lotes es la cantidad original.
	assert.EqualValues(t, 10, res.Source.Quantity+res.Destination.Quantity)
}

func TestApply_Transfer_ReusaLoteDestinoExistente(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1", 10)
	existing := &entity.Batch{
		ID: "b2", ProductID: "prod-yogur", LotCode: "L-2024-07",
		ExpiryDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Quantity:   2, LocationID: locNevera,
	}
	s.batches["b2"] = existing
	uc := newEngine(t, s)

	res, err := uc.Apply(context.Background(), inventory.MovementInputDTO{
		BatchID: "b1", Type: entity.MovementTypeTRANSFER, Quantity: 3,
		DestinationLocationID: locNevera,
	})
	require.NoError(t, err)
	assert.Equal(t, "b2", res.Destination.ID, "debe reutilizar el lote existente en destino")
	assert.EqualValues(t, 5, res.Destination.Quantity)
	assert.EqualValues(t, 7, res.Source.Quantity)
}

func TestApply_Transfer_MismaUbicacion_Rechaza(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1", 10)
	uc := newEngine(t, s)

	_, err := uc.Apply(context.Background(), inventory.MovementInputDTO{
		BatchID: "b1", Type: entity.MovementTypeTRANSFER, Quantity: 3,
		DestinationLocationID: locDespensa, // el lote ya está ahí
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDestination)
	assert.EqualValues(t, 10, quantityOf(t, s, "b1"))
}

func TestApply_Transfer_DestinoInexistente_NotFound(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1", 10)
	uc := newEngine(t, s)

	_, err := uc.Apply(context.Background(), inventory.MovementInputDTO{
		BatchID: "b1", Type: entity.MovementTypeTRANSFER, Quantity: 3,
		DestinationLocationID: "loc-fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApply_Transfer_SinStockSuficiente_Rechaza(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1", 2)
	uc := newEngine(t, s)

	_, err := uc.Apply(context.Background(), inventory.MovementInputDTO{
		BatchID: "b1", Type: entity.MovementTypeTRANSFER, Quantity: 3,
		DestinationLocationID: locNevera,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 2, quantityOf(t, s, "b1"))
	assert.Len(t, s.batches, 1, "no debe crearse lote destino en un traslado rechazado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_Transfer_FalloEnDestino_NoDejaDecrementoParcial(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1", 10)
	s.failGetOrCreate = true
	uc := newEngine(t, s)

	_, err := uc.Apply(context.Background(), inventory.MovementInputDTO{
		BatchID: "b1", Type: entity.MovementTypeTRANSFER, Quantity: 4,
		DestinationLocationID: locNevera,
	})
	require.Error(t, err)
	assert.EqualValues(t, 10, quantityOf(t, s, "b1"),
		"un traslado que falla al resolver destino no debe decrementar el origen")
	assert.Empty(t, s.movements)
}

func TestApply_FalloAlPersistirMovimiento_RevierteElLote(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1", 10)
	s.failCreateMov = true
	uc := newEngine(t, s)

	_, err := uc.Apply(context.Background(), inventory.MovementInputDTO{
		BatchID: "b1", Type: entity.MovementTypeIN, Quantity: 5,
	})
	require.Error(t, err)
	assert.EqualValues(t, 10, quantityOf(t, s, "b1"),
		"lote y movimiento se confirman como unidad: si el insert falla, el lote vuelve atrás")
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Dos OUT concurrentes de 6 y 7 contra un lote con 10: exactamente uno debe
// confirmar y el otro fallar con stock insuficiente; el lote nunca queda
// negativo. La relectura bajo lock es la que impide el doble descuento.
func TestApply_OUTConcurrentes_SoloUnoConfirma(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1", 10)
	uc := newEngine(t, s)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, qty := range []int64{6, 7} {
		wg.Add(1)
		go func(q int64) {
			defer wg.Done()
			_, err := uc.Apply(context.Background(), inventory.MovementInputDTO{
				BatchID: "b1", Type: entity.MovementTypeOUT, Quantity: q,
			})
			errs <- err
		}(qty)
	}
	wg.Wait()
	close(errs)

	var okCount, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			okCount++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, okCount, "exactamente un OUT debe confirmar")
	assert.Equal(t, 1, insufficient, "el otro debe fallar con stock insuficiente")

	final := quantityOf(t, s, "b1")
	assert.GreaterOrEqual(t, final, int64(0), "el lote nunca debe quedar negativo")
	assert.Contains(t, []int64{3, 4}, final)
	assert.Len(t, s.movements, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario de referencia: 10 → IN 5 → OUT 20 (rechazado) → TRANSFER 10
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_EscenarioDeReferencia(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1", 10)
	uc := newEngine(t, s)
	ctx := context.Background()

	res, err := uc.Apply(ctx, inventory.MovementInputDTO{
		BatchID: "b1", Type: entity.MovementTypeIN, Quantity: 5,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 15, res.Source.Quantity)

	_, err = uc.Apply(ctx, inventory.MovementInputDTO{
		BatchID: "b1", Type: entity.MovementTypeOUT, Quantity: 20,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 15, quantityOf(t, s, "b1"))

	res, err = uc.Apply(ctx, inventory.MovementInputDTO{
		BatchID: "b1", Type: entity.MovementTypeTRANSFER, Quantity: 10,
		DestinationLocationID: locNevera,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5, res.Source.Quantity)
	require.NotNil(t, res.Destination)
	assert.EqualValues(t, 10, res.Destination.Quantity)
	assert.Equal(t, "prod-yogur", res.Destination.ProductID)
	assert.Equal(t, "L-2024-07", res.Destination.LotCode)
	assert.Equal(t, locNevera, res.Destination.LocationID)
}

// La cantidad de un lote es un fold sobre la secuencia de movimientos
// confirmados: aplicando una secuencia mixta, la cantidad nunca baja de cero y
// el valor final coincide con el fold manual.
func TestApply_SecuenciaDeMovimientos_FoldConsistente(t *testing.T) {
	s := newMemStore()
	seedBatch(s, "b1", 0)
	uc := newEngine(t, s)
	ctx := context.Background()

	steps := []struct {
		tipo string
		qty  int64
		ok   bool
	}{
		{entity.MovementTypeIN, 8, true},
		{entity.MovementTypeOUT, 3, true},
		{entity.MovementTypeWASTE, 2, true},
		{entity.MovementTypeOUT, 4, false}, // 3 disponibles, rechazado
		{entity.MovementTypeADJUST, 12, true},
		{entity.MovementTypeOUT, 12, true},
	}

	for i, st := range steps {
		_, err := uc.Apply(ctx, inventory.MovementInputDTO{
			BatchID: "b1", Type: st.tipo, Quantity: st.qty,
		})
		if st.ok {
			require.NoError(t, err, "paso %d (%s %d)", i, st.tipo, st.qty)
		} else {
			require.ErrorIs(t, err, domain.ErrInsufficientStock, "paso %d", i)
		}
		assert.GreaterOrEqual(t, quantityOf(t, s, "b1"), int64(0),
			"no-negatividad tras el paso %d", i)
	}

	assert.EqualValues(t, 0, quantityOf(t, s, "b1"))
	assert.Len(t, s.movements, 5, "solo los movimientos confirmados quedan en el libro")
}
