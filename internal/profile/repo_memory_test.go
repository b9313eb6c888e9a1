package profile

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestMemoryRepoGetEmpty(t *testing.T) {
	repo := NewMemoryRepo()
	if _, err := repo.Get(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoCreateThenGet(t *testing.T) {
	repo := NewMemoryRepo()
	id, err := repo.Create(context.Background(), Profile{FullName: "Jane Doe"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatalf("expected generated id")
	}

	got, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FullName != "Jane Doe" || got.ID != id {
		t.Fatalf("unexpected profile: %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps set")
	}
}

func TestMemoryRepoCreateIsUpsert(t *testing.T) {
	repo := NewMemoryRepo()
	id1, err := repo.Create(context.Background(), Profile{FullName: "Jane Doe"})
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	id2, err := repo.Create(context.Background(), Profile{FullName: "Jane D. Doe"})
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("upsert should keep id, got %q then %q", id1, id2)
	}

	got, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FullName != "Jane D. Doe" {
		t.Fatalf("expected replacement content, got %q", got.FullName)
	}
}

func TestMemoryRepoReplaceRequiresExisting(t *testing.T) {
	repo := NewMemoryRepo()
	if _, err := repo.Replace(context.Background(), Profile{FullName: "Jane"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	id, err := repo.Create(context.Background(), Profile{FullName: "Jane"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	replacedID, err := repo.Replace(context.Background(), Profile{FullName: "Janet"})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if replacedID != id {
		t.Fatalf("Replace should keep id")
	}
}

func TestMemoryRepoConcurrentAccess(t *testing.T) {
	repo := NewMemoryRepo()
	if _, err := repo.Create(context.Background(), Profile{FullName: "Jane"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := repo.Get(context.Background()); err != nil {
					t.Errorf("Get: %v", err)
					return
				}
				if _, err := repo.Create(context.Background(), Profile{FullName: "Jane"}); err != nil {
					t.Errorf("Create: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
