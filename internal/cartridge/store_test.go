package cartridge

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/nileshk/solance/internal/db"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(testDB(t))
	ctx := context.Background()

	c := validCartridge()
	c.Meta.CreatedBy = "user-1"
	c.Meta.Public = true

	id, err := store.Insert(ctx, c)
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if !ValidSubjectID(id) {
		t.Fatalf("Insert() minted invalid id %q", id)
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Meta.SubjectID != id {
		t.Errorf("SubjectID = %q, want %q", got.Meta.SubjectID, id)
	}
	if got.Meta.DisplayName != c.Meta.DisplayName {
		t.Errorf("DisplayName = %q, want %q", got.Meta.DisplayName, c.Meta.DisplayName)
	}
	if len(got.Curriculum) != len(c.Curriculum) {
		t.Errorf("curriculum length = %d, want %d", len(got.Curriculum), len(c.Curriculum))
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := NewStore(testDB(t))

	_, err := store.Get(context.Background(), "nosuch")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() = %v, want ErrNotFound", err)
	}
}

func TestStoreInsertRejectsInvalid(t *testing.T) {
	store := NewStore(testDB(t))

	c := validCartridge()
	c.Curriculum = nil

	_, err := store.Insert(context.Background(), c)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Insert() = %v, want ValidationError", err)
	}
}

func TestStoreListVisibility(t *testing.T) {
	store := NewStore(testDB(t))
	ctx := context.Background()

	pub := validCartridge()
	pub.Meta.CreatedBy = "alice"
	pub.Meta.Public = true
	pubID, err := store.Insert(ctx, pub)
	if err != nil {
		t.Fatalf("Insert(public) error: %v", err)
	}

	priv := validCartridge()
	priv.Meta.DisplayName = "Private Algebra"
	priv.Meta.CreatedBy = "alice"
	priv.Meta.Public = false
	privID, err := store.Insert(ctx, priv)
	if err != nil {
		t.Fatalf("Insert(private) error: %v", err)
	}

	// Owner sees both.
	got, err := store.ListForUser(ctx, "alice")
	if err != nil {
		t.Fatalf("ListForUser(alice) error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("alice sees %d subjects, want 2", len(got))
	}

	// Strangers see only the public one.
	got, err = store.ListForUser(ctx, "bob")
	if err != nil {
		t.Fatalf("ListForUser(bob) error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("bob sees %d subjects, want 1", len(got))
	}
	if got[0].SubjectID != pubID {
		t.Errorf("bob sees %q, want public subject %q (private is %q)", got[0].SubjectID, pubID, privID)
	}
}
