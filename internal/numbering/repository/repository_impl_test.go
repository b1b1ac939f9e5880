package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	numberingdomain "github.com/mrossi-dev/gestionale/internal/numbering/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:numbering%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&numberingdomain.Counter{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Serialize writers: the in-memory dialect has no row locking.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func newRepo(t *testing.T) numberingdomain.Repository {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return Provide(node)
}

var invoiceDefaults = numberingdomain.Defaults{Prefix: "FT-", PadWidth: 5}

func TestNextStartsAtOneAndIncrements(t *testing.T) {
	db := newTestDB(t)
	repo := newRepo(t)
	ctx := context.Background()

	first, err := repo.Next(ctx, db, "INVOICE", 2026, invoiceDefaults)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.LastNumber)
	assert.Equal(t, "FT-00001", first.Format(first.LastNumber))

	second, err := repo.Next(ctx, db, "INVOICE", 2026, invoiceDefaults)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.LastNumber)
}

func TestNextSeedsCounterWithDefaults(t *testing.T) {
	db := newTestDB(t)
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.Next(ctx, db, "CREDIT_NOTE", 2026, numberingdomain.Defaults{Prefix: "NC-", Suffix: "/X", PadWidth: 4})
	require.NoError(t, err)

	counter, err := repo.Find(ctx, db, "CREDIT_NOTE", 2026)
	require.NoError(t, err)
	assert.Equal(t, "NC-", counter.Prefix)
	assert.Equal(t, "/X", counter.Suffix)
	assert.Equal(t, 4, counter.PadWidth)
}

func TestNextSequencesAreIndependentPerTypeAndYear(t *testing.T) {
	db := newTestDB(t)
	repo := newRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Next(ctx, db, "INVOICE", 2026, invoiceDefaults)
		require.NoError(t, err)
	}

	other, err := repo.Next(ctx, db, "CREDIT_NOTE", 2026, invoiceDefaults)
	require.NoError(t, err)
	assert.Equal(t, int64(1), other.LastNumber)

	nextYear, err := repo.Next(ctx, db, "INVOICE", 2027, invoiceDefaults)
	require.NoError(t, err)
	assert.Equal(t, int64(1), nextYear.LastNumber)

	// The 2026 invoice counter is untouched by either.
	current, err := repo.Find(ctx, db, "INVOICE", 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(3), current.LastNumber)
}

func TestNextConcurrentAllocationsAreDistinct(t *testing.T) {
	db := newTestDB(t)
	repo := newRepo(t)
	ctx := context.Background()

	const workers = 20
	numbers := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counter, err := repo.Next(ctx, db, "INVOICE", 2026, invoiceDefaults)
			assert.NoError(t, err)
			if err == nil {
				numbers <- counter.LastNumber
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[int64]bool, workers)
	for n := range numbers {
		assert.False(t, seen[n], "number %d allocated twice", n)
		seen[n] = true
	}
	require.Len(t, seen, workers)
	for n := int64(1); n <= workers; n++ {
		assert.True(t, seen[n], "number %d missing from sequence", n)
	}
}

func TestNextInsideRolledBackTransactionBurnsNothing(t *testing.T) {
	db := newTestDB(t)
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.Next(ctx, db, "INVOICE", 2026, invoiceDefaults)
	require.NoError(t, err)

	rollback := fmt.Errorf("abort")
	err = db.Transaction(func(tx *gorm.DB) error {
		counter, err := repo.Next(ctx, tx, "INVOICE", 2026, invoiceDefaults)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counter.LastNumber)
		return rollback
	})
	require.ErrorIs(t, err, rollback)

	after, err := repo.Next(ctx, db, "INVOICE", 2026, invoiceDefaults)
	require.NoError(t, err)
	assert.Equal(t, int64(2), after.LastNumber)
}

func TestFindMissingCounter(t *testing.T) {
	db := newTestDB(t)
	repo := newRepo(t)

	_, err := repo.Find(context.Background(), db, "INVOICE", 1999)
	assert.ErrorIs(t, err, numberingdomain.ErrCounterNotFound)
}

func TestConfigureCreatesThenUpdatesFormatting(t *testing.T) {
	db := newTestDB(t)
	repo := newRepo(t)
	ctx := context.Background()

	created, err := repo.Configure(ctx, db, "DEBIT_NOTE", 2026, numberingdomain.Defaults{Prefix: "ND-", PadWidth: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(0), created.LastNumber)
	assert.Equal(t, "ND-", created.Prefix)

	_, err = repo.Next(ctx, db, "DEBIT_NOTE", 2026, numberingdomain.Defaults{})
	require.NoError(t, err)

	// Reconfiguring changes formatting only, never the sequence.
	updated, err := repo.Configure(ctx, db, "DEBIT_NOTE", 2026, numberingdomain.Defaults{Prefix: "ND/", PadWidth: 3})
	require.NoError(t, err)
	assert.Equal(t, "ND/", updated.Prefix)
	assert.Equal(t, 3, updated.PadWidth)
	assert.Equal(t, int64(1), updated.LastNumber)
}

func TestListOrdersByTypeAndYear(t *testing.T) {
	db := newTestDB(t)
	repo := newRepo(t)
	ctx := context.Background()

	for _, pair := range []struct {
		docType string
		year    int
	}{
		{"INVOICE", 2027},
		{"CREDIT_NOTE", 2026},
		{"INVOICE", 2026},
	} {
		_, err := repo.Next(ctx, db, pair.docType, pair.year, numberingdomain.Defaults{})
		require.NoError(t, err)
	}

	counters, err := repo.List(ctx, db)
	require.NoError(t, err)
	require.Len(t, counters, 3)
	assert.Equal(t, "CREDIT_NOTE", counters[0].DocumentType)
	assert.Equal(t, "INVOICE", counters[1].DocumentType)
	assert.Equal(t, 2026, counters[1].Year)
	assert.Equal(t, 2027, counters[2].Year)
}
