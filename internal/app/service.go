// Package app assembles the domain services behind a single interface the
// transport adapters call. It decouples presentation from business logic:
// implementations contain no display logic of any kind.
package app

import (
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"petstore-backend/internal/core"
)

// ApplicationService is the single surface the web adapter depends on.
type ApplicationService interface {
	Users() core.UserService
	Pets() core.PetService
	Inventory() core.InventoryService
	Catalog() core.CatalogService
	Appointments() core.AppointmentService
	Orders() core.OrderService
	Sales() core.SaleService
}

type appService struct {
	users        core.UserService
	pets         core.PetService
	inventory    core.InventoryService
	catalog      core.CatalogService
	appointments core.AppointmentService
	orders       core.OrderService
	sales        core.SaleService
}

// NewAppService wires the full service graph over one connection pool.
func NewAppService(pool *pgxpool.Pool, notifier core.Notifier, logger *log.Logger) ApplicationService {
	pricing := core.NewPricingEngine(pool)
	inventory := core.NewInventoryService(pool, pricing)
	return &appService{
		users:        core.NewUserService(pool),
		pets:         core.NewPetService(pool),
		inventory:    inventory,
		catalog:      core.NewCatalogService(pool),
		appointments: core.NewAppointmentService(pool),
		orders:       core.NewOrderService(pool, inventory, notifier, logger),
		sales:        core.NewSaleService(pool, inventory),
	}
}

func (s *appService) Users() core.UserService               { return s.users }
func (s *appService) Pets() core.PetService                 { return s.pets }
func (s *appService) Inventory() core.InventoryService      { return s.inventory }
func (s *appService) Catalog() core.CatalogService          { return s.catalog }
func (s *appService) Appointments() core.AppointmentService { return s.appointments }
func (s *appService) Orders() core.OrderService             { return s.orders }
func (s *appService) Sales() core.SaleService               { return s.sales }
