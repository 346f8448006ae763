package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PetProfile is a customer's pet, bookable onto grooming appointments.
type PetProfile struct {
	ID              int             `json:"id"`
	OwnerID         int             `json:"owner_id"`
	Name            string          `json:"pet_name"`
	Breed           string          `json:"breed"`
	Branch          Branch          `json:"branch"`
	AgeValue        int             `json:"age_value"`
	AgeUnit         string          `json:"age_unit"`
	Birthdate       time.Time       `json:"birthdate"`
	Gender          string          `json:"gender"`
	WeightLbs       decimal.Decimal `json:"weight_lbs"`
	AdditionalNotes string          `json:"additional_notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PetInput is the caller-supplied portion of a PetProfile.
type PetInput struct {
	Name            string          `json:"pet_name"`
	Breed           string          `json:"breed"`
	Branch          Branch          `json:"branch"`
	AgeValue        int             `json:"age_value"`
	AgeUnit         string          `json:"age_unit"`
	Birthdate       time.Time       `json:"birthdate"`
	Gender          string          `json:"gender"`
	WeightLbs       decimal.Decimal `json:"weight_lbs"`
	AdditionalNotes string          `json:"additional_notes"`
}

// PetService manages pet profiles, scoped to their owner.
type PetService interface {
	Create(ctx context.Context, ownerID int, input PetInput) (*PetProfile, error)
	Get(ctx context.Context, ownerID, petID int) (*PetProfile, error)
	ListForOwner(ctx context.Context, ownerID int) ([]PetProfile, error)
	Update(ctx context.Context, ownerID, petID int, input PetInput) (*PetProfile, error)
	Delete(ctx context.Context, ownerID, petID int) error
}

type petService struct {
	pool *pgxpool.Pool
}

func NewPetService(pool *pgxpool.Pool) PetService {
	return &petService{pool: pool}
}

const petColumns = `id, owner_id, pet_name, breed, branch, age_value, age_unit,
	birthdate, gender, weight_lbs, additional_notes, created_at, updated_at`

func scanPet(row pgx.Row) (*PetProfile, error) {
	var p PetProfile
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Breed, &p.Branch, &p.AgeValue, &p.AgeUnit,
		&p.Birthdate, &p.Gender, &p.WeightLbs, &p.AdditionalNotes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func validatePetInput(input PetInput) error {
	if input.Name == "" {
		return InvalidArgumentf("pet name is required")
	}
	if !input.Branch.Valid() {
		return InvalidArgumentf("unknown branch %q", input.Branch)
	}
	if input.AgeUnit != "months" && input.AgeUnit != "years" {
		return InvalidArgumentf("age unit must be months or years, got %q", input.AgeUnit)
	}
	if input.Gender != "male" && input.Gender != "female" {
		return InvalidArgumentf("gender must be male or female, got %q", input.Gender)
	}
	return nil
}

func (s *petService) Create(ctx context.Context, ownerID int, input PetInput) (*PetProfile, error) {
	if err := validatePetInput(input); err != nil {
		return nil, err
	}
	pet, err := scanPet(s.pool.QueryRow(ctx, `
		INSERT INTO pet_profiles (owner_id, pet_name, breed, branch, age_value, age_unit,
		                          birthdate, gender, weight_lbs, additional_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+petColumns,
		ownerID, input.Name, input.Breed, input.Branch, input.AgeValue, input.AgeUnit,
		input.Birthdate, input.Gender, input.WeightLbs, input.AdditionalNotes,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create pet %q: %w", input.Name, err)
	}
	return pet, nil
}

func (s *petService) Get(ctx context.Context, ownerID, petID int) (*PetProfile, error) {
	pet, err := scanPet(s.pool.QueryRow(ctx,
		"SELECT "+petColumns+" FROM pet_profiles WHERE id = $1 AND owner_id = $2",
		petID, ownerID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("pet %d not found", petID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pet %d: %w", petID, err)
	}
	return pet, nil
}

func (s *petService) ListForOwner(ctx context.Context, ownerID int) ([]PetProfile, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+petColumns+" FROM pet_profiles WHERE owner_id = $1 ORDER BY created_at DESC",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query pets: %w", err)
	}
	defer rows.Close()

	var pets []PetProfile
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pet: %w", err)
		}
		pets = append(pets, *p)
	}
	return pets, rows.Err()
}

func (s *petService) Update(ctx context.Context, ownerID, petID int, input PetInput) (*PetProfile, error) {
	if err := validatePetInput(input); err != nil {
		return nil, err
	}
	pet, err := scanPet(s.pool.QueryRow(ctx, `
		UPDATE pet_profiles
		SET pet_name = $1, breed = $2, branch = $3, age_value = $4, age_unit = $5,
		    birthdate = $6, gender = $7, weight_lbs = $8, additional_notes = $9,
		    updated_at = NOW()
		WHERE id = $10 AND owner_id = $11
		RETURNING `+petColumns,
		input.Name, input.Breed, input.Branch, input.AgeValue, input.AgeUnit,
		input.Birthdate, input.Gender, input.WeightLbs, input.AdditionalNotes,
		petID, ownerID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("pet %d not found", petID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update pet %d: %w", petID, err)
	}
	return pet, nil
}

func (s *petService) Delete(ctx context.Context, ownerID, petID int) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM pet_profiles WHERE id = $1 AND owner_id = $2", petID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete pet %d: %w", petID, err)
	}
	if tag.RowsAffected() == 0 {
		return NotFoundf("pet %d not found", petID)
	}
	return nil
}
