package core_test

import (
	"context"
	"testing"

	"petstore-backend/internal/core"

	"github.com/shopspring/decimal"
)

func TestPet_OwnerScoping(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	pets := core.NewPetService(pool)
	owner := createTestUser(t, pool, "user")
	stranger := createTestUser(t, pool, "user")

	pet, err := pets.Create(ctx, owner.ID, core.PetInput{
		Name:      "Biscuit",
		Breed:     "Shih Tzu",
		Branch:    core.BranchMatina,
		AgeValue:  3,
		AgeUnit:   "years",
		Gender:    "male",
		WeightLbs: decimal.RequireFromString("12.50"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Another user's lookups, updates, and deletes all miss.
	if _, err := pets.Get(ctx, stranger.ID, pet.ID); !core.IsNotFound(err) {
		t.Errorf("expected not found for stranger, got %v", err)
	}
	if err := pets.Delete(ctx, stranger.ID, pet.ID); !core.IsNotFound(err) {
		t.Errorf("expected not found deleting as stranger, got %v", err)
	}

	list, err := pets.ListForOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListForOwner: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Biscuit" {
		t.Errorf("unexpected listing %+v", list)
	}

	if err := pets.Delete(ctx, owner.ID, pet.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestPet_InputValidation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	pets := core.NewPetService(pool)
	owner := createTestUser(t, pool, "user")

	bad := []core.PetInput{
		{Name: "", Branch: core.BranchMatina, AgeValue: 1, AgeUnit: "years", Gender: "male"},
		{Name: "X", Branch: "Downtown", AgeValue: 1, AgeUnit: "years", Gender: "male"},
		{Name: "X", Branch: core.BranchMatina, AgeValue: 1, AgeUnit: "decades", Gender: "male"},
		{Name: "X", Branch: core.BranchMatina, AgeValue: 1, AgeUnit: "years", Gender: "robot"},
	}
	for i, input := range bad {
		if _, err := pets.Create(ctx, owner.ID, input); core.KindOf(err) != core.KindInvalidArgument {
			t.Errorf("case %d: expected invalid argument, got %v", i, err)
		}
	}
}
