package catalogue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/Conceptual-Machines/fretboard-api/internal/models"
)

func mustShape(t *testing.T, rootPC int, quality, chart string) Shape {
	t.Helper()
	frets, err := fretboard.ParseShape(chart)
	require.NoError(t, err)
	return Shape{RootPC: rootPC, Quality: quality, Frets: frets}
}

func TestSeed_PassesAudit(t *testing.T) {
	store := NewSeededStore()
	results, failures, err := AuditStore(context.Background(), store, fretboard.StandardTuning)
	require.NoError(t, err)
	require.Len(t, results, len(seedEntries))

	for _, r := range results {
		assert.True(t, r.OK, r.String())
	}
	assert.Zero(t, failures)
}

func TestAudit(t *testing.T) {
	tests := []struct {
		name         string
		shape        Shape
		ok           bool
		missing      []int
		extra        []int
		fifthOmitted bool
	}{
		{
			name:  "open C",
			shape: mustShape(t, 0, "", "x32010"),
			ok:    true,
		},
		{
			name:         "C7 without its fifth is allowed",
			shape:        mustShape(t, 0, "7", "x32310"),
			ok:           true,
			fifthOmitted: true,
		},
		{
			name:    "open C labelled as C7 misses the seventh",
			shape:   mustShape(t, 0, "7", "x32010"),
			missing: []int{10},
		},
		{
			name:  "open Am7 labelled as Am carries an extra tone",
			shape: mustShape(t, 9, "m", "x02010"),
			extra: []int{10},
		},
		{
			name:    "power chord needs its fifth",
			shape:   mustShape(t, 4, "5", "0xxxxx"),
			missing: []int{7},
		},
		{
			name:  "unregistered quality fails",
			shape: mustShape(t, 0, "wat", "x32010"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Audit(tt.shape, fretboard.StandardTuning)
			assert.Equal(t, tt.ok, r.OK, r.String())
			if tt.missing == nil {
				tt.missing = []int{}
			}
			if tt.extra == nil {
				tt.extra = []int{}
			}
			assert.Equal(t, tt.missing, r.Missing)
			assert.Equal(t, tt.extra, r.Extra)
			assert.Equal(t, tt.fifthOmitted, r.FifthOmitted)
		})
	}
}

func TestMemoryStore_LookupNormalizesQuality(t *testing.T) {
	store := NewSeededStore()
	ctx := context.Background()

	byAlias, err := store.Lookup(ctx, 9, "min7")
	require.NoError(t, err)
	require.Len(t, byAlias, 1)
	assert.Equal(t, "m7", byAlias[0].Quality)
	assert.Equal(t, "x02010", byAlias[0].Chart())
	assert.Equal(t, "Am7", byAlias[0].Label())

	wrapped, err := store.Lookup(ctx, 21, "m7")
	require.NoError(t, err)
	assert.Equal(t, byAlias, wrapped)

	none, err := store.Lookup(ctx, 1, "13")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStore_Save(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, mustShape(t, 0, "maj", "x32010")))
	alt := mustShape(t, 0, "", "x35553")
	alt.Position = 1
	require.NoError(t, store.Save(ctx, alt))

	shapes, err := store.Lookup(ctx, 0, "")
	require.NoError(t, err)
	require.Len(t, shapes, 2)
	assert.Equal(t, "x32010", shapes[0].Chart())
	assert.Equal(t, "x35553", shapes[1].Chart())

	// same position replaces
	replacement := mustShape(t, 0, "", "032010")
	require.NoError(t, store.Save(ctx, replacement))
	shapes, _ = store.Lookup(ctx, 0, "")
	assert.Equal(t, "032010", shapes[0].Chart())

	err = store.Save(ctx, mustShape(t, 0, "nonsense", "x32010"))
	assert.ErrorIs(t, err, ErrInvalidShape)

	err = store.Save(ctx, mustShape(t, 0, "", "xxxxxx"))
	assert.ErrorIs(t, err, ErrInvalidShape)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestShape_Fingering(t *testing.T) {
	f := mustShape(t, 5, "", "133211").Fingering(fretboard.StandardTuning)
	assert.Equal(t, 0, f.BassString)
	assert.Equal(t, 1, f.BassFret)
	assert.Equal(t, []int{0, 4, 7}, f.RealizedIntervals)
	require.NotNil(t, f.Barre)
	assert.Equal(t, fretboard.Barre{Fret: 1, LowString: 0, HighString: 5}, *f.Barre)
	assert.Equal(t, "catalogue", f.Strategy)

	open := mustShape(t, 2, "", "xx0232").Fingering(fretboard.StandardTuning)
	assert.Equal(t, 2, open.BassString)
	assert.Equal(t, 0, open.BassFret)
	assert.Equal(t, fretboard.DifficultyEasy, open.Difficulty)
}

func TestModelConversion(t *testing.T) {
	shape := mustShape(t, 7, "7", "320001")
	shape.Position = 2

	row := toModel(shape)
	assert.Equal(t, "320001", row.Shape)
	assert.Equal(t, "user", row.Source)

	back, err := fromModel(row)
	require.NoError(t, err)
	shape.Source = "user"
	assert.Equal(t, shape, back)

	_, err = fromModels([]models.ChordShape{{ID: 4, Shape: "bogus"}})
	assert.Error(t, err)
}
