package routing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRoute(t *testing.T, propertyID, printClassID uuid.UUID, scope RouteScope) PrintClassRoute {
	t.Helper()
	route, err := NewPrintClassRoute(propertyID, printClassID, uuid.New(), scope)
	require.NoError(t, err)
	return *route
}

func TestSelectRoutes_TierPrecedence(t *testing.T) {
	propertyID := uuid.New()
	printClassID := uuid.New()
	rvcID := uuid.New()

	rvcRoute := mustRoute(t, propertyID, printClassID, RvcScoped(rvcID))
	propRoute := mustRoute(t, propertyID, printClassID, PropertyScoped(propertyID))
	globalRoute := mustRoute(t, propertyID, printClassID, GlobalScope())

	t.Run("rvc tier wins outright, tiers never merge", func(t *testing.T) {
		selected := SelectRoutes([]PrintClassRoute{globalRoute, propRoute, rvcRoute}, rvcID, propertyID)
		require.Len(t, selected, 1)
		assert.Equal(t, rvcRoute.ID, selected[0].ID)
	})

	t.Run("property tier wins over global when no rvc row matches", func(t *testing.T) {
		otherRvc := uuid.New()
		selected := SelectRoutes([]PrintClassRoute{globalRoute, propRoute, rvcRoute}, otherRvc, propertyID)
		require.Len(t, selected, 1)
		assert.Equal(t, propRoute.ID, selected[0].ID)
	})

	t.Run("global tier used when nothing narrower matches", func(t *testing.T) {
		selected := SelectRoutes([]PrintClassRoute{globalRoute}, rvcID, propertyID)
		require.Len(t, selected, 1)
		assert.Equal(t, globalRoute.ID, selected[0].ID)
	})

	t.Run("multiple rows within the winning tier are all returned", func(t *testing.T) {
		secondRvc := mustRoute(t, propertyID, printClassID, RvcScoped(rvcID))
		selected := SelectRoutes([]PrintClassRoute{rvcRoute, propRoute, secondRvc}, rvcID, propertyID)
		assert.Len(t, selected, 2)
	})

	t.Run("no matching rows yields empty", func(t *testing.T) {
		selected := SelectRoutes([]PrintClassRoute{rvcRoute, propRoute}, uuid.New(), uuid.New())
		assert.Empty(t, selected)
	})
}

func TestRouteScope(t *testing.T) {
	rvcID := uuid.New()
	propertyID := uuid.New()

	tests := []struct {
		name  string
		scope RouteScope
		rank  int
	}{
		{"rvc scope ranks first", RvcScoped(rvcID), 0},
		{"property scope ranks second", PropertyScoped(propertyID), 1},
		{"global scope ranks last", GlobalScope(), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.rank, tt.scope.Rank())
			assert.True(t, tt.scope.Kind.IsValid())
		})
	}

	t.Run("rvc scope only matches its rvc", func(t *testing.T) {
		scope := RvcScoped(rvcID)
		assert.True(t, scope.Matches(rvcID, propertyID))
		assert.False(t, scope.Matches(uuid.New(), propertyID))
	})

	t.Run("global matches everything", func(t *testing.T) {
		assert.True(t, GlobalScope().Matches(uuid.New(), uuid.New()))
	})
}

func TestNewPrintClassRoute_Validation(t *testing.T) {
	propertyID := uuid.New()
	printClassID := uuid.New()

	t.Run("rvc scope requires rvc id", func(t *testing.T) {
		_, err := NewPrintClassRoute(propertyID, printClassID, uuid.New(), RouteScope{Kind: ScopeRvc})
		assert.Error(t, err)
	})

	t.Run("property scope requires property id", func(t *testing.T) {
		_, err := NewPrintClassRoute(propertyID, printClassID, uuid.New(), RouteScope{Kind: ScopeProperty})
		assert.Error(t, err)
	})

	t.Run("unknown scope kind rejected", func(t *testing.T) {
		_, err := NewPrintClassRoute(propertyID, printClassID, uuid.New(), RouteScope{Kind: ScopeKind("region")})
		assert.Error(t, err)
	})
}
