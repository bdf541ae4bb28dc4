package store

import (
	"errors"
	"testing"

	"github.com/BenjaminAliagaMardones/sistemashooper/internal/models"
	"github.com/BenjaminAliagaMardones/sistemashooper/internal/services"
)

func TestClientStoreTenantIsolation(t *testing.T) {
	db := setupStoreDB(t)
	owner := seedUser(t, db, "owner@x.com")
	intruder := seedUser(t, db, "intruder@x.com")
	client := seedClient(t, db, owner, "Ana")
	cs := NewClientStore(db)

	if _, err := cs.Get(owner.ID, client.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}

	// Every cross-tenant access path reports not-found, never forbidden.
	if _, err := cs.Get(intruder.ID, client.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-tenant get: got %v, want ErrNotFound", err)
	}
	name := "Hacked"
	if _, err := cs.Update(intruder.ID, client.ID, ClientPatch{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-tenant update: got %v, want ErrNotFound", err)
	}
	if err := cs.Delete(intruder.ID, client.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-tenant delete: got %v, want ErrNotFound", err)
	}

	// The failed attempts must not have touched the row.
	got, err := cs.Get(owner.ID, client.ID)
	if err != nil {
		t.Fatalf("owner re-get: %v", err)
	}
	if got.Name != "Ana" {
		t.Errorf("client name changed to %q", got.Name)
	}
}

func TestClientStoreListScopedAndOrdered(t *testing.T) {
	db := setupStoreDB(t)
	owner := seedUser(t, db, "owner@x.com")
	other := seedUser(t, db, "other@x.com")
	first := seedClient(t, db, owner, "First")
	second := seedClient(t, db, owner, "Second")
	seedClient(t, db, other, "Foreign")
	cs := NewClientStore(db)

	clients, err := cs.List(owner.ID, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(clients))
	}
	if clients[0].ID != first.ID || clients[1].ID != second.ID {
		t.Errorf("expected creation order, got %v then %v", clients[0].Name, clients[1].Name)
	}

	page, err := cs.List(owner.ID, 1, 1)
	if err != nil {
		t.Fatalf("paged list: %v", err)
	}
	if len(page) != 1 || page[0].ID != second.ID {
		t.Errorf("pagination broken: %+v", page)
	}
}

func TestClientStorePartialUpdate(t *testing.T) {
	db := setupStoreDB(t)
	owner := seedUser(t, db, "owner@x.com")
	client := models.Client{UserID: owner.ID, Name: "Ana", LastName: "Pérez", Email: "ana@x.com", Phone: "123"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	cs := NewClientStore(db)

	phone := "456"
	updated, err := cs.Update(owner.ID, client.ID, ClientPatch{Phone: &phone})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Phone != "456" {
		t.Errorf("phone not updated: %q", updated.Phone)
	}
	// absent fields stay untouched
	if updated.Name != "Ana" || updated.LastName != "Pérez" || updated.Email != "ana@x.com" {
		t.Errorf("unrelated fields changed: %+v", updated)
	}

	// explicitly provided empty string clears the field
	empty := ""
	updated, err = cs.Update(owner.ID, client.ID, ClientPatch{Email: &empty})
	if err != nil {
		t.Fatalf("clear email: %v", err)
	}
	if updated.Email != "" {
		t.Errorf("email not cleared: %q", updated.Email)
	}
}

func TestClientStoreDeleteCascades(t *testing.T) {
	db := setupStoreDB(t)
	owner := seedUser(t, db, "owner@x.com")
	client := seedClient(t, db, owner, "Ana")
	keep := seedClient(t, db, owner, "Keep")
	os := NewOrderStore(db)
	items := []services.ItemInput{{Name: "Thing", BasePrice: 10, Quantity: 1}}
	if _, err := os.Create(owner.ID, client.ID, OrderMeta{}, items); err != nil {
		t.Fatalf("order for victim client: %v", err)
	}
	kept, err := os.Create(owner.ID, keep.ID, OrderMeta{}, items)
	if err != nil {
		t.Fatalf("order for kept client: %v", err)
	}

	cs := NewClientStore(db)
	if err := cs.Delete(owner.ID, client.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var clients, orders, orderItems int64
	db.Model(&models.Client{}).Count(&clients)
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&orderItems)
	if clients != 1 || orders != 1 || orderItems != 1 {
		t.Fatalf("cascade wrong: clients=%d orders=%d items=%d", clients, orders, orderItems)
	}
	var survivor models.Order
	if err := db.First(&survivor, "id = ?", kept.ID).Error; err != nil {
		t.Fatalf("unrelated order was deleted: %v", err)
	}
}
