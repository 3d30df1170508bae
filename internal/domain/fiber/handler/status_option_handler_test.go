package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeStatusOptionStore keeps options in memory and records deletes.
type fakeStatusOptionStore struct {
	options map[string]model.StatusOption
	deleted []string
}

func (f *fakeStatusOptionStore) List(orgID uuid.UUID) ([]model.StatusOption, error) {
	out := make([]model.StatusOption, 0, len(f.options))
	for _, opt := range f.options {
		out = append(out, opt)
	}
	return out, nil
}

func (f *fakeStatusOptionStore) Create(option *model.StatusOption) error {
	option.ID = uuid.New()
	f.options[option.ID.String()] = *option
	return nil
}

func (f *fakeStatusOptionStore) Update(option *model.StatusOption) error {
	f.options[option.ID.String()] = *option
	return nil
}

func (f *fakeStatusOptionStore) Delete(orgID uuid.UUID, id string) error {
	delete(f.options, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeStatusOptionStore) FindByID(orgID uuid.UUID, id string) (*model.StatusOption, error) {
	opt, ok := f.options[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &opt, nil
}

func newStatusOptionTestApp(store *fakeStatusOptionStore) *fiber.App {
	app := fiber.New()
	NewStatusOptionHandler(store).RegisterRoutes(app)
	return app
}

func TestDeleteStatusOptionRejectsSystemScope(t *testing.T) {
	systemID := uuid.New()
	store := &fakeStatusOptionStore{options: map[string]model.StatusOption{
		systemID.String(): {ID: systemID, Scope: model.StatusOptionScopeSystem, Label: "Compliant"},
	}}
	app := newStatusOptionTestApp(store)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/eval/status-options/"+systemID.String(), nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusForbidden)
	}
	if len(store.deleted) != 0 {
		t.Errorf("delete reached the store for a system row: %v", store.deleted)
	}
	if _, ok := store.options[systemID.String()]; !ok {
		t.Error("system row removed from the store")
	}
}

func TestDeleteStatusOptionOrganizationScope(t *testing.T) {
	orgRowID := uuid.New()
	store := &fakeStatusOptionStore{options: map[string]model.StatusOption{
		orgRowID.String(): {ID: orgRowID, Scope: model.StatusOptionScopeOrganization, Label: "Waived"},
	}}
	app := newStatusOptionTestApp(store)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/eval/status-options/"+orgRowID.String(), nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
	if len(store.deleted) != 1 || store.deleted[0] != orgRowID.String() {
		t.Errorf("deleted = %v, want [%s]", store.deleted, orgRowID)
	}
}

func TestDeleteStatusOptionNotFound(t *testing.T) {
	store := &fakeStatusOptionStore{options: map[string]model.StatusOption{}}
	app := newStatusOptionTestApp(store)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/eval/status-options/"+uuid.NewString(), nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusNotFound)
	}
}
