package bitcoin

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/application/ports"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProjectRepo struct {
	projects map[string]*entity.Project
}

func (r *fakeProjectRepo) Create(p *entity.Project) error { r.projects[p.ID] = p; return nil }
func (r *fakeProjectRepo) GetByID(id string) (*entity.Project, error) {
	return r.projects[id], nil
}
func (r *fakeProjectRepo) GetBySlug(string) (*entity.Project, error) { return nil, nil }
func (r *fakeProjectRepo) Update(p *entity.Project) error            { r.projects[p.ID] = p; return nil }
func (r *fakeProjectRepo) ListByActor(string, int, int) ([]*entity.Project, int, error) {
	return nil, 0, nil
}
func (r *fakeProjectRepo) ListPublic(int, int) ([]*entity.Project, int, error) {
	return nil, 0, nil
}
func (r *fakeProjectRepo) Delete(id string) error { delete(r.projects, id); return nil }

type trackedKey struct{ projectID, txid string }

type fakeTrackedRepo struct {
	txs map[trackedKey]*entity.TrackedTransaction
}

func newFakeTrackedRepo() *fakeTrackedRepo {
	return &fakeTrackedRepo{txs: make(map[trackedKey]*entity.TrackedTransaction)}
}

func (r *fakeTrackedRepo) Upsert(tx *entity.TrackedTransaction) error {
	r.txs[trackedKey{tx.ProjectID, tx.TxID}] = tx
	return nil
}
func (r *fakeTrackedRepo) GetByTxID(projectID, txid string) (*entity.TrackedTransaction, error) {
	return r.txs[trackedKey{projectID, txid}], nil
}
func (r *fakeTrackedRepo) ListByProject(projectID string, limit, offset int) ([]*entity.TrackedTransaction, int, error) {
	var list []*entity.TrackedTransaction
	for k, tx := range r.txs {
		if k.projectID == projectID {
			list = append(list, tx)
		}
	}
	return list, len(list), nil
}
func (r *fakeTrackedRepo) NetReceivedSats(projectID string) (int64, error) {
	var net int64
	for k, tx := range r.txs {
		if k.projectID != projectID {
			continue
		}
		if tx.Direction == entity.TxReceived {
			net += tx.AmountSats
		} else {
			net -= tx.AmountSats
		}
	}
	return net, nil
}

type fakeExplorer struct {
	balance *ports.ChainBalance
	txs     []ports.ChainTx
}

func (e *fakeExplorer) AddressBalance(context.Context, string) (*ports.ChainBalance, error) {
	return e.balance, nil
}
func (e *fakeExplorer) AddressTransactions(context.Context, string) ([]ports.ChainTx, error) {
	return e.txs, nil
}

type fakePrices struct{ usd float64 }

func (p *fakePrices) BTCPriceUSD(context.Context) (float64, error) { return p.usd, nil }

type fakePDF struct{}

func (fakePDF) GenerateTransparencyPDF(context.Context, *dto.TransparencyReportResponse, string) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

const (
	trackerOwner   = "actor-dueno"
	trackerProject = "proj-1"
)

func newTrackerFixture(txs []ports.ChainTx) (*UseCase, *fakeProjectRepo, *fakeTrackedRepo) {
	now := time.Now()
	projects := &fakeProjectRepo{projects: map[string]*entity.Project{
		trackerProject: {
			ID:             trackerProject,
			ActorID:        trackerOwner,
			Title:          "Nodo comunitario",
			BitcoinAddress: "bc1qejemplo",
			Status:         entity.StatusActive,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}}
	tracked := newFakeTrackedRepo()
	uc := NewUseCase(projects, tracked,
		&fakeExplorer{
			balance: &ports.ChainBalance{ConfirmedSats: 39000, TotalReceivedSats: 70000, TotalSentSats: 31000},
			txs:     txs,
		},
		&fakePrices{usd: 97000},
		fakePDF{},
		zerolog.Nop(),
	)
	return uc, projects, tracked
}

func chainTxs() []ports.ChainTx {
	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	return []ports.ChainTx{
		{TxID: "tx-recibida", AmountSats: 70000, Confirmed: true, Timestamp: base},
		{TxID: "tx-enviada", AmountSats: -31000, Confirmed: true, Timestamp: base.Add(time.Hour)},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Refresh
// ──────────────────────────────────────────────────────────────────────────────

// El refresco sella las transacciones y recalcula lo recaudado del proyecto.
func TestRefresh_ActualizaRaisedSats(t *testing.T) {
	uc, projects, tracked := newTrackerFixture(chainTxs())

	list, err := uc.Refresh(context.Background(), trackerOwner, trackerProject)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	project, _ := projects.GetByID(trackerProject)
	assert.Equal(t, int64(39000), project.RaisedSats, "recibido 70000 menos enviado 31000")

	sealed, _ := tracked.GetByTxID(trackerProject, "tx-enviada")
	require.NotNil(t, sealed)
	assert.Equal(t, entity.TxSent, sealed.Direction)
	assert.Equal(t, int64(31000), sealed.AmountSats, "el monto sellado es absoluto")
	assert.NotEmpty(t, sealed.VerificationHash)
}

// Refrescar dos veces no duplica sellos ni infla lo recaudado.
func TestRefresh_EsIdempotente(t *testing.T) {
	uc, projects, tracked := newTrackerFixture(chainTxs())

	_, err := uc.Refresh(context.Background(), trackerOwner, trackerProject)
	require.NoError(t, err)
	_, err = uc.Refresh(context.Background(), trackerOwner, trackerProject)
	require.NoError(t, err)

	assert.Len(t, tracked.txs, 2)
	project, _ := projects.GetByID(trackerProject)
	assert.Equal(t, int64(39000), project.RaisedSats)
}

// Con más enviado que recibido lo recaudado queda en cero, nunca negativo.
func TestRefresh_NetoNegativo_QuedaEnCero(t *testing.T) {
	uc, projects, _ := newTrackerFixture([]ports.ChainTx{
		{TxID: "tx-enviada", AmountSats: -5000, Confirmed: true, Timestamp: time.Now().UTC()},
	})

	_, err := uc.Refresh(context.Background(), trackerOwner, trackerProject)
	require.NoError(t, err)

	project, _ := projects.GetByID(trackerProject)
	assert.Equal(t, int64(0), project.RaisedSats)
}

func TestRefresh_Validaciones(t *testing.T) {
	uc, projects, _ := newTrackerFixture(chainTxs())

	_, err := uc.Refresh(context.Background(), "actor-extrano", trackerProject)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Refresh(context.Background(), trackerOwner, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	projects.projects[trackerProject].BitcoinAddress = ""
	_, err = uc.Refresh(context.Background(), trackerOwner, trackerProject)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Verificación de sellos
// ──────────────────────────────────────────────────────────────────────────────

func TestVerifyTransaction_SelloIntegroYAdulterado(t *testing.T) {
	uc, _, tracked := newTrackerFixture(chainTxs())

	_, err := uc.Refresh(context.Background(), trackerOwner, trackerProject)
	require.NoError(t, err)

	out, err := uc.VerifyTransaction(trackerProject, "tx-recibida")
	require.NoError(t, err)
	assert.True(t, out.Valid)

	// Adulterar el monto invalida el sello.
	tracked.txs[trackedKey{trackerProject, "tx-recibida"}].AmountSats = 999999
	out, err = uc.VerifyTransaction(trackerProject, "tx-recibida")
	require.NoError(t, err)
	assert.False(t, out.Valid)

	_, err = uc.VerifyTransaction(trackerProject, "tx-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
