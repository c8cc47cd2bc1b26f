package ordering

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainordering "github.com/possuite/backend/internal/domain/ordering"
	"github.com/possuite/backend/internal/domain/shared"
)

type fakeChecks struct {
	store map[uuid.UUID]*domainordering.Check
}

func newFakeChecks() *fakeChecks {
	return &fakeChecks{store: make(map[uuid.UUID]*domainordering.Check)}
}

func (f *fakeChecks) FindByID(_ context.Context, id uuid.UUID) (*domainordering.Check, error) {
	if check, ok := f.store[id]; ok {
		return check, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeChecks) FindAll(_ context.Context, _ shared.Filter) ([]domainordering.Check, error) {
	return nil, nil
}

func (f *fakeChecks) Save(_ context.Context, check *domainordering.Check) error {
	f.store[check.ID] = check
	return nil
}

func (f *fakeChecks) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.store, id)
	return nil
}

func (f *fakeChecks) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(f.store)), nil
}

func (f *fakeChecks) FindOpenByRvc(_ context.Context, rvcID uuid.UUID) ([]domainordering.Check, error) {
	var out []domainordering.Check
	for _, check := range f.store {
		if check.RvcID == rvcID && check.Status == domainordering.CheckStatusOpen {
			out = append(out, *check)
		}
	}
	return out, nil
}

func (f *fakeChecks) FindByNumber(_ context.Context, propertyID uuid.UUID, businessDate string, checkNumber int) (*domainordering.Check, error) {
	for _, check := range f.store {
		if check.PropertyID == propertyID && check.BusinessDate == businessDate && check.CheckNumber == checkNumber {
			return check, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeChecks) FindByItemID(_ context.Context, itemID uuid.UUID) (*domainordering.Check, error) {
	for _, check := range f.store {
		if check.FindItem(itemID) != nil {
			return check, nil
		}
	}
	return nil, shared.ErrNotFound
}

type fakeMenuItems struct {
	store map[uuid.UUID]*domainordering.MenuItem
}

func newFakeMenuItems() *fakeMenuItems {
	return &fakeMenuItems{store: make(map[uuid.UUID]*domainordering.MenuItem)}
}

func (f *fakeMenuItems) FindByID(_ context.Context, id uuid.UUID) (*domainordering.MenuItem, error) {
	if item, ok := f.store[id]; ok {
		return item, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeMenuItems) FindAll(_ context.Context, _ shared.Filter) ([]domainordering.MenuItem, error) {
	return nil, nil
}

func (f *fakeMenuItems) Save(_ context.Context, item *domainordering.MenuItem) error {
	f.store[item.ID] = item
	return nil
}

func (f *fakeMenuItems) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.store, id)
	return nil
}

func (f *fakeMenuItems) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(f.store)), nil
}

func (f *fakeMenuItems) FindByIDs(_ context.Context, ids []uuid.UUID) ([]domainordering.MenuItem, error) {
	var out []domainordering.MenuItem
	for _, id := range ids {
		if item, ok := f.store[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeMenuItems) FindByProperty(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]domainordering.MenuItem, error) {
	return nil, nil
}

func (f *fakeMenuItems) FindByPrintClass(_ context.Context, _ uuid.UUID) ([]domainordering.MenuItem, error) {
	return nil, nil
}

type fakeProperties struct {
	store map[uuid.UUID]*domainordering.Property
}

func newFakeProperties() *fakeProperties {
	return &fakeProperties{store: make(map[uuid.UUID]*domainordering.Property)}
}

func (f *fakeProperties) FindByID(_ context.Context, id uuid.UUID) (*domainordering.Property, error) {
	if property, ok := f.store[id]; ok {
		return property, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeProperties) FindAll(_ context.Context, _ shared.Filter) ([]domainordering.Property, error) {
	return nil, nil
}

func (f *fakeProperties) Save(_ context.Context, property *domainordering.Property) error {
	f.store[property.ID] = property
	return nil
}

func (f *fakeProperties) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.store, id)
	return nil
}

func (f *fakeProperties) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(f.store)), nil
}

func (f *fakeProperties) FindByCode(_ context.Context, code string) (*domainordering.Property, error) {
	for _, property := range f.store {
		if property.Code == code {
			return property, nil
		}
	}
	return nil, shared.ErrNotFound
}

type fakeRvcs struct {
	store map[uuid.UUID]*domainordering.RevenueCenter
}

func newFakeRvcs() *fakeRvcs {
	return &fakeRvcs{store: make(map[uuid.UUID]*domainordering.RevenueCenter)}
}

func (f *fakeRvcs) FindByID(_ context.Context, id uuid.UUID) (*domainordering.RevenueCenter, error) {
	if rvc, ok := f.store[id]; ok {
		return rvc, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeRvcs) FindAll(_ context.Context, _ shared.Filter) ([]domainordering.RevenueCenter, error) {
	return nil, nil
}

func (f *fakeRvcs) Save(_ context.Context, rvc *domainordering.RevenueCenter) error {
	f.store[rvc.ID] = rvc
	return nil
}

func (f *fakeRvcs) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.store, id)
	return nil
}

func (f *fakeRvcs) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(f.store)), nil
}

func (f *fakeRvcs) FindByProperty(_ context.Context, propertyID uuid.UUID) ([]domainordering.RevenueCenter, error) {
	var out []domainordering.RevenueCenter
	for _, rvc := range f.store {
		if rvc.PropertyID == propertyID {
			out = append(out, *rvc)
		}
	}
	return out, nil
}

type checkFixture struct {
	svc        *CheckService
	checks     *fakeChecks
	property   *domainordering.Property
	rvc        *domainordering.RevenueCenter
	menuItem   *domainordering.MenuItem
	employeeID uuid.UUID
}

func newCheckFixture(t *testing.T) *checkFixture {
	t.Helper()

	checks := newFakeChecks()
	menuItems := newFakeMenuItems()
	properties := newFakeProperties()
	rvcs := newFakeRvcs()

	property, err := domainordering.NewProperty("Harbor Grill", "HG1", "UTC", "USD")
	require.NoError(t, err)
	require.NoError(t, properties.Save(context.Background(), property))

	rvc, err := domainordering.NewRevenueCenter(property.ID, "Dining Room", "DR")
	require.NoError(t, err)
	require.NoError(t, rvcs.Save(context.Background(), rvc))

	menuItem, err := domainordering.NewMenuItem(property.ID, "Cheeseburger", "1001", decimal.RequireFromString("4.99"))
	require.NoError(t, err)
	require.NoError(t, menuItems.Save(context.Background(), menuItem))

	return &checkFixture{
		svc:        NewCheckService(checks, menuItems, properties, rvcs, nil, zap.NewNop()),
		checks:     checks,
		property:   property,
		rvc:        rvc,
		menuItem:   menuItem,
		employeeID: uuid.New(),
	}
}

func (f *checkFixture) openCheck(t *testing.T, number int) *domainordering.Check {
	t.Helper()
	check, err := f.svc.OpenCheck(context.Background(), OpenCheckInput{
		PropertyID:   f.property.ID,
		RvcID:        f.rvc.ID,
		EmployeeID:   f.employeeID,
		EmployeeName: "Alice",
		CheckNumber:  number,
		TableName:    "T7",
		GuestCount:   2,
	})
	require.NoError(t, err)
	return check
}

func TestCheckService_OpenCheck(t *testing.T) {
	f := newCheckFixture(t)
	ctx := context.Background()

	check := f.openCheck(t, 101)
	assert.Equal(t, domainordering.CheckStatusOpen, check.Status)
	assert.Equal(t, "T7", check.TableName)
	assert.NotEmpty(t, check.BusinessDate)

	t.Run("rvc must belong to the property", func(t *testing.T) {
		otherProperty, err := domainordering.NewProperty("Dockside", "DS1", "UTC", "USD")
		require.NoError(t, err)
		require.NoError(t, f.svc.properties.Save(ctx, otherProperty))

		_, err = f.svc.OpenCheck(ctx, OpenCheckInput{
			PropertyID:  otherProperty.ID,
			RvcID:       f.rvc.ID,
			EmployeeID:  f.employeeID,
			CheckNumber: 102,
		})
		assert.ErrorIs(t, err, shared.ErrCrossProperty)
	})
}

func TestCheckService_OrderAndPay(t *testing.T) {
	f := newCheckFixture(t)
	ctx := context.Background()

	check := f.openCheck(t, 101)

	item, err := f.svc.AddItem(ctx, check.ID, f.menuItem.ID, 2, 3, []string{"No Onions"})
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	require.Len(t, item.Modifiers, 1)

	updated, err := f.svc.GetCheck(ctx, check.ID)
	require.NoError(t, err)
	assert.Equal(t, "9.98", updated.Subtotal.StringFixed(2))

	updated, err = f.svc.SetTax(ctx, check.ID, decimal.RequireFromString("0.81"))
	require.NoError(t, err)
	assert.Equal(t, "10.79", updated.Total.StringFixed(2))

	t.Run("close rejected while unpaid", func(t *testing.T) {
		_, err := f.svc.CloseCheck(ctx, check.ID)
		assert.Error(t, err)
	})

	_, err = f.svc.AddPayment(ctx, check.ID, domainordering.TenderCash, decimal.RequireFromString("10.79"), decimal.Zero, "")
	require.NoError(t, err)

	closed, err := f.svc.CloseCheck(ctx, check.ID)
	require.NoError(t, err)
	assert.Equal(t, domainordering.CheckStatusClosed, closed.Status)

	t.Run("items cannot be added after close", func(t *testing.T) {
		_, err := f.svc.AddItem(ctx, check.ID, f.menuItem.ID, 1, 0, nil)
		assert.Error(t, err)
	})
}

func TestCheckService_ListOpenChecks(t *testing.T) {
	f := newCheckFixture(t)
	ctx := context.Background()

	f.openCheck(t, 101)
	f.openCheck(t, 102)

	open, err := f.svc.ListOpenChecks(ctx, f.rvc.ID)
	require.NoError(t, err)
	assert.Len(t, open, 2)

	_, err = f.svc.GetCheck(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
