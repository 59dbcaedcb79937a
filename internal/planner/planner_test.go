package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pageport/internal/alphabet"
	"github.com/roach88/pageport/internal/catalog"
	"github.com/roach88/pageport/internal/ir"
	"github.com/roach88/pageport/internal/pages"
)

func newPlanner() *Planner {
	return New(catalog.MustBuiltin(), nil)
}

func assertGolden(t *testing.T, name string, v any) {
	t.Helper()
	data, err := ir.MarshalCanonical(v)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}

func TestConvertTouchChatDefaults(t *testing.T) {
	plan, err := newPlanner().Convert(context.Background(), ir.ConvertRequest{TargetSystem: "TouchChat"})
	require.NoError(t, err)

	assert.Nil(t, plan.Source)
	assert.Equal(t, ir.GridSize{Rows: 6, Columns: 10}, plan.TargetGrid)
	assert.Equal(t, "WordPower 60 Basic", plan.Target.Pageset)
	assert.Equal(t,
		[]string{pages.NameAlphabet, pages.NameCoreWords, pages.NameQuickPhrases},
		ir.PageNames(plan.CustomPages))
	assert.Equal(t, "Start with core + navigation placement, then layer fringe/topics and morphology popups.",
		plan.ConversionSteps[0])
	assert.Empty(t, plan.Compatibility.GridAdjustments)
	assert.Len(t, plan.CatalogPreview, 2)

	assertGolden(t, "convert_touchchat_defaults", plan)
}

func TestConvertGridToProloquo(t *testing.T) {
	plan, err := newPlanner().Convert(context.Background(), ir.ConvertRequest{
		SourceSystem:  "Grid for iPad",
		SourcePageset: "Super Core 50",
		TargetSystem:  "Proloquo2Go",
	})
	require.NoError(t, err)

	require.NotNil(t, plan.Source)
	assert.True(t, plan.Source.Catalogued)
	assert.Equal(t, "Crescendo 64", plan.Target.Pageset)
	assert.Equal(t, ir.GridSize{Rows: 8, Columns: 8}, plan.TargetGrid)
	assert.Empty(t, plan.Compatibility.GridAdjustments)

	require.GreaterOrEqual(t, len(plan.ConversionSteps), 4)
	assert.Equal(t,
		"Export vocabulary from Super Core 50 (Grid for iPad) using CSV/TXT if available to preserve categories and stored phrases.",
		plan.ConversionSteps[0])
	assert.Equal(t,
		"Replicate navigation anchors from Super Core 50 (e.g., home/back positions) before resizing grids in Proloquo2Go.",
		plan.ConversionSteps[1])
	assert.Equal(t,
		"Super Core 50: Preserve bottom-row navigation buttons to maintain motor plans when moving to other systems.",
		plan.ConversionSteps[2])
	assert.Equal(t,
		"Super Core 50: Map color coding (Fitzgerald/Modified Fitzgerald) to the closest option on the target system.",
		plan.ConversionSteps[3])

	assertGolden(t, "convert_grid_to_proloquo", plan)
}

func TestConvertCustomTarget(t *testing.T) {
	plan, err := newPlanner().Convert(context.Background(), ir.ConvertRequest{
		SourceSystem:     "TouchChat",
		TargetSystem:     "Unknown Vendor",
		TargetRows:       ir.Int(4),
		TargetColumns:    ir.Int(5),
		SymbolSet:        "PCS",
		CustomVocabulary: []string{"park", "pizza"},
	})
	require.NoError(t, err)

	assert.Equal(t, ir.PagesetCustom, plan.Target.Pageset)
	assert.False(t, plan.Target.Catalogued)
	assert.Equal(t, []string{"PCS"}, plan.Target.SymbolLibraries)
	require.NotNil(t, plan.Target.DefaultGrid)
	assert.Equal(t, ir.GridSize{Rows: 4, Columns: 5}, *plan.Target.DefaultGrid)
	assert.Nil(t, plan.Compatibility.SymbolSetSupported, "unknown profile cannot confirm support")

	assertGolden(t, "convert_custom_target", plan)
}

func TestConvertUncataloguedTargetWithoutGrid(t *testing.T) {
	_, err := newPlanner().Convert(context.Background(), ir.ConvertRequest{TargetSystem: "Unknown Vendor"})
	require.Error(t, err)

	var adv *Advisory
	require.True(t, errors.As(err, &adv))
	assert.Equal(t, "Unknown Vendor", adv.System)
	assert.Contains(t, adv.Message, "targetRows and targetColumns")
	assert.ErrorIs(t, err, ErrTargetUncatalogued)
}

func TestConvertUncataloguedTargetSingleOverride(t *testing.T) {
	plan, err := newPlanner().Convert(context.Background(), ir.ConvertRequest{
		SourceSystem:  "Proloquo2Go",
		SourcePageset: "Crescendo 64",
		TargetSystem:  "Unknown Vendor",
		TargetRows:    ir.Int(5),
	})
	require.NoError(t, err)

	// source grid 8x8 supplies the column count
	assert.Equal(t, ir.GridSize{Rows: 5, Columns: 8}, plan.TargetGrid)
}

func TestConvertClampsOverride(t *testing.T) {
	plan, err := newPlanner().Convert(context.Background(), ir.ConvertRequest{
		TargetSystem:  "touchchat",
		TargetRows:    ir.Int(12),
		TargetColumns: ir.Int(20),
	})
	require.NoError(t, err)

	assert.Equal(t, ir.GridSize{Rows: 8, Columns: 12}, plan.TargetGrid)
	assert.Equal(t,
		[]string{"TouchChat: adjusted grid to 8x12 (supports rows 2-8, columns 4-12)."},
		plan.Compatibility.GridAdjustments)
	for _, step := range plan.ConversionSteps {
		assert.NotContains(t, step, "adjusted grid")
	}
}

func TestConvertTargetPagesetSelection(t *testing.T) {
	p := newPlanner()
	ctx := context.Background()

	explicit, err := p.Convert(ctx, ir.ConvertRequest{TargetSystem: "TouchChat", TargetPageset: "multichat 15"})
	require.NoError(t, err)
	assert.Equal(t, "MultiChat 15", explicit.Target.Pageset)
	assert.Equal(t, ir.GridSize{Rows: 3, Columns: 5}, explicit.TargetGrid)

	bySource, err := p.Convert(ctx, ir.ConvertRequest{SourcePageset: "PODD 60 Expanded", TargetSystem: "TD Snap"})
	require.NoError(t, err)
	assert.Equal(t, "PODD 60 Expanded", bySource.Target.Pageset)

	fallback, err := p.Convert(ctx, ir.ConvertRequest{TargetSystem: "TD Snap", TargetPageset: "Missing"})
	require.NoError(t, err)
	assert.Equal(t, "Core First 60", fallback.Target.Pageset)
}

func TestConvertSourceDescriptors(t *testing.T) {
	p := newPlanner()
	ctx := context.Background()

	systemOnly, err := p.Convert(ctx, ir.ConvertRequest{SourceSystem: "Snap Core", TargetSystem: "TouchChat"})
	require.NoError(t, err)
	require.NotNil(t, systemOnly.Source)
	assert.Equal(t, ir.PagesetRef{System: "Snap Core", Pageset: ir.PagesetUnspecified}, *systemOnly.Source)
	assert.Equal(t,
		"Map high-frequency core from Snap Core into the target grid first to preserve motor plans.",
		systemOnly.ConversionSteps[0])

	named, err := p.Convert(ctx, ir.ConvertRequest{SourceSystem: "Snap Core", SourcePageset: "Core 36", TargetSystem: "TouchChat"})
	require.NoError(t, err)
	assert.Equal(t, "Core 36", named.Source.Pageset)

	none, err := p.Convert(ctx, ir.ConvertRequest{TargetSystem: "TouchChat"})
	require.NoError(t, err)
	assert.Nil(t, none.Source)
}

func TestConvertTargetLayoutAndAccessSteps(t *testing.T) {
	plan, err := newPlanner().Convert(context.Background(), ir.ConvertRequest{
		TargetSystem:  "TouchChat",
		TargetPageset: "MultiChat 15",
	})
	require.NoError(t, err)

	assert.Contains(t, plan.ConversionSteps,
		"MultiChat 15 layout: Category folders with consistent color coding and photo-friendly noun spots")
	assert.Contains(t, plan.ConversionSteps,
		"MultiChat 15 access: Ideal for touch access with ample target size; consider keyguards when expanding grid density.")
	assert.Equal(t,
		"TouchChat: Check symbol licensing if moving PCS-heavy pagesets into SymbolStix-first environments.",
		plan.ConversionSteps[len(plan.ConversionSteps)-1])
}

func TestConvertSymbolSet(t *testing.T) {
	plan, err := newPlanner().Convert(context.Background(), ir.ConvertRequest{
		TargetSystem: "Proloquo2Go",
		SymbolSet:    "PCS",
	})
	require.NoError(t, err)

	last := plan.ConversionSteps[len(plan.ConversionSteps)-1]
	assert.Equal(t, "Ensure symbol library compatibility: requested PCS. Remap incompatible symbols to text labels where needed.", last)
	require.NotNil(t, plan.Compatibility.SymbolSetSupported)
	assert.False(t, *plan.Compatibility.SymbolSetSupported)
	assert.Equal(t, "PCS", plan.Compatibility.RequestedSymbolSet)
	for _, page := range plan.CustomPages {
		assert.Equal(t, "PCS", page.SymbolSet)
	}
}

func TestConvertSymbolPreferenceFromTarget(t *testing.T) {
	plan, err := newPlanner().Convert(context.Background(), ir.ConvertRequest{TargetSystem: "TD Snap"})
	require.NoError(t, err)

	for _, page := range plan.CustomPages {
		assert.Equal(t, "PCS", page.SymbolSet, page.Name)
	}
}

func TestConvertCatalogPreviewCoversSourceAndTarget(t *testing.T) {
	plan, err := newPlanner().Convert(context.Background(), ir.ConvertRequest{
		SourceSystem: "LAMP Words for Life",
		TargetSystem: "Proloquo2Go",
	})
	require.NoError(t, err)

	got := make([]string, len(plan.CatalogPreview))
	for i, e := range plan.CatalogPreview {
		got[i] = e.Pageset
	}
	assert.Equal(t, []string{"Crescendo 64", "Full 84"}, got)
}

func TestConvertArgumentErrors(t *testing.T) {
	p := newPlanner()
	ctx := context.Background()

	_, err := p.Convert(ctx, ir.ConvertRequest{TargetSystem: "  "})
	var argErr *ArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "targetSystem", argErr.Field)

	_, err = p.Convert(ctx, ir.ConvertRequest{TargetSystem: "TouchChat", TargetRows: ir.Int(0)})
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "targetRows", argErr.Field)
}

func TestConvertAlphabetSoftFail(t *testing.T) {
	failing := alphabet.ResolverFunc(func(context.Context, string, string) (alphabet.Layout, error) {
		return alphabet.Layout{}, errors.New("timeout")
	})
	p := New(catalog.MustBuiltin(), failing)

	plan, err := p.Convert(context.Background(), ir.ConvertRequest{
		TargetSystem:     "TouchChat",
		AlphabetLanguage: "sv",
	})
	require.NoError(t, err)
	require.Len(t, plan.CustomPages, 3)
	assert.Contains(t, plan.CustomPages[0].Notes, "Alphabet lookup failed for sv/default: timeout")
}

func TestConvertAlphabetPreview(t *testing.T) {
	p := New(catalog.MustBuiltin(), alphabet.NewBuiltin())

	plan, err := p.Convert(context.Background(), ir.ConvertRequest{
		TargetSystem:     "Proloquo2Go",
		AlphabetLanguage: "ru",
	})
	require.NoError(t, err)

	alpha := plan.CustomPages[0].Alphabet
	require.NotNil(t, alpha)
	assert.Equal(t, "Cyrl", alpha.Script)
	assert.Len(t, alpha.UppercasePreview, 8)
}

func TestConvertDeterministic(t *testing.T) {
	p := newPlanner()
	req := ir.ConvertRequest{
		SourceSystem:     "Grid for iPad",
		TargetSystem:     "TouchChat",
		CustomVocabulary: []string{"zoo", "farm"},
	}

	a, err := p.Convert(context.Background(), req)
	require.NoError(t, err)
	b, err := p.Convert(context.Background(), req)
	require.NoError(t, err)

	fa, err := ir.PlanFingerprint(a)
	require.NoError(t, err)
	fb, err := ir.PlanFingerprint(b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
}
