package store

import (
	"errors"
	"testing"
	"time"

	"github.com/BenjaminAliagaMardones/sistemashooper/internal/models"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/services"
)

func TestOrderStoreCreateComputesTotals(t *testing.T) {
	db := setupStoreDB(t)
	owner := seedUser(t, db, "owner@x.com")
	client := seedClient(t, db, owner, "Ana")
	os := NewOrderStore(db)

	order, err := os.Create(owner.ID, client.ID, OrderMeta{PaymentMethod: "card"}, []services.ItemInput{
		{Name: "Sneakers", BasePrice: 100, TaxPercent: 10, CommissionPercent: 5, Quantity: 2},
		{Name: "Socks", BasePrice: 10, TaxPercent: 0, CommissionPercent: 0, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.Status != models.StatusPending {
		t.Errorf("status = %s, want PENDING", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	if order.TotalTax != 20 || order.TotalCommission != 11 || order.TotalProfit != 11 || order.TotalAmount != 241 {
		t.Errorf("unexpected totals: tax=%v commission=%v profit=%v amount=%v",
			order.TotalTax, order.TotalCommission, order.TotalProfit, order.TotalAmount)
	}

	// persisted totals must equal the sum of the persisted item amounts
	reloaded, err := os.Get(owner.ID, order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var tax, commission, profit, amount float64
	for _, it := range reloaded.Items {
		tax += it.TaxAmount
		commission += it.CommissionAmount
		profit += it.ProfitAmount
		amount += it.FinalPrice
	}
	if reloaded.TotalTax != tax || reloaded.TotalCommission != commission ||
		reloaded.TotalProfit != profit || reloaded.TotalAmount != amount {
		t.Errorf("totals diverge from item sums: %+v", reloaded)
	}
}

func TestOrderStoreCreateIsAtomic(t *testing.T) {
	db := setupStoreDB(t)
	owner := seedUser(t, db, "owner@x.com")
	client := seedClient(t, db, owner, "Ana")
	os := NewOrderStore(db)

	// empty item list: nothing persists
	if _, err := os.Create(owner.ID, client.ID, OrderMeta{}, nil); !errors.Is(err, services.ErrNoItems) {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}
	// invalid second item: nothing persists either
	_, err := os.Create(owner.ID, client.ID, OrderMeta{}, []services.ItemInput{
		{Name: "OK", BasePrice: 5, Quantity: 1},
		{Name: "Bad", BasePrice: -5, Quantity: 1},
	})
	if !errors.Is(err, services.ErrNegativePrice) {
		t.Fatalf("expected ErrNegativePrice, got %v", err)
	}

	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	if orders != 0 || items != 0 {
		t.Fatalf("partial rows left behind: orders=%d items=%d", orders, items)
	}
}

func TestOrderStoreCreateRejectsForeignClient(t *testing.T) {
	db := setupStoreDB(t)
	owner := seedUser(t, db, "owner@x.com")
	intruder := seedUser(t, db, "intruder@x.com")
	client := seedClient(t, db, owner, "Ana")
	os := NewOrderStore(db)

	_, err := os.Create(intruder.ID, client.ID, OrderMeta{}, []services.ItemInput{
		{Name: "Thing", BasePrice: 10, Quantity: 1},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign client, got %v", err)
	}
	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	if orders != 0 {
		t.Fatalf("order persisted despite rejected client: %d", orders)
	}
}

func TestOrderStoreUpdateStatus(t *testing.T) {
	db := setupStoreDB(t)
	owner := seedUser(t, db, "owner@x.com")
	intruder := seedUser(t, db, "intruder@x.com")
	client := seedClient(t, db, owner, "Ana")
	os := NewOrderStore(db)
	order, err := os.Create(owner.ID, client.ID, OrderMeta{}, []services.ItemInput{
		{Name: "Thing", BasePrice: 10, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	delivered := models.StatusDelivered
	notes := "left at the door"
	updated, err := os.UpdateStatus(owner.ID, order.ID, StatusPatch{Status: &delivered, Notes: &notes})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != models.StatusDelivered || updated.Notes != notes {
		t.Errorf("patch not applied: %+v", updated)
	}

	// transitions are unconstrained: DELIVERED back to PENDING is allowed
	pending := models.StatusPending
	updated, err = os.UpdateStatus(owner.ID, order.ID, StatusPatch{Status: &pending})
	if err != nil {
		t.Fatalf("backwards transition: %v", err)
	}
	if updated.Status != models.StatusPending {
		t.Errorf("status = %s, want PENDING", updated.Status)
	}
	if updated.Notes != notes {
		t.Errorf("notes should survive a status-only patch: %q", updated.Notes)
	}

	if _, err := os.UpdateStatus(intruder.ID, order.ID, StatusPatch{Status: &delivered}); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-tenant status update: got %v, want ErrNotFound", err)
	}

	// totals never change after creation, whatever happens to the status
	reloaded, _ := os.Get(owner.ID, order.ID)
	if reloaded.TotalAmount != order.TotalAmount {
		t.Errorf("total changed from %v to %v", order.TotalAmount, reloaded.TotalAmount)
	}
}

func TestOrderStoreDeleteRemovesItems(t *testing.T) {
	db := setupStoreDB(t)
	owner := seedUser(t, db, "owner@x.com")
	client := seedClient(t, db, owner, "Ana")
	os := NewOrderStore(db)
	order, err := os.Create(owner.ID, client.ID, OrderMeta{}, []services.ItemInput{
		{Name: "A", BasePrice: 1, Quantity: 1},
		{Name: "B", BasePrice: 2, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := os.Delete(owner.ID, order.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	if orders != 0 || items != 0 {
		t.Fatalf("rows left behind: orders=%d items=%d", orders, items)
	}
}

func TestOrderStoreListScoped(t *testing.T) {
	db := setupStoreDB(t)
	owner := seedUser(t, db, "owner@x.com")
	other := seedUser(t, db, "other@x.com")
	ownClient := seedClient(t, db, owner, "Mine")
	otherClient := seedClient(t, db, other, "Theirs")
	os := NewOrderStore(db)
	items := []services.ItemInput{{Name: "Thing", BasePrice: 10, Quantity: 1}}
	if _, err := os.Create(owner.ID, ownClient.ID, OrderMeta{Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}, items); err != nil {
		t.Fatalf("own order: %v", err)
	}
	if _, err := os.Create(other.ID, otherClient.ID, OrderMeta{}, items); err != nil {
		t.Fatalf("other order: %v", err)
	}

	orders, err := os.List(owner.ID, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	if len(orders[0].Items) != 1 {
		t.Errorf("items not preloaded: %+v", orders[0])
	}
}
