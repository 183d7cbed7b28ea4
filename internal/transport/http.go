package transport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"goldenbites/internal/cart"
	"goldenbites/internal/catalog"
	"goldenbites/internal/handler"
	"goldenbites/internal/notification"
	"goldenbites/internal/order"
	"goldenbites/internal/review"
	"goldenbites/internal/session"
)

func NewRouter(pool *pgxpool.Pool, carts cart.Store, requestTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(session.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	catalogRepo := catalog.NewRepository(pool)
	notificationRepo := notification.NewRepository(pool)
	orderRepo := order.NewRepository(pool)
	reviewRepo := review.NewRepository(pool)

	notifier := notification.NewLedgerNotifier(notificationRepo)
	orderSvc := order.NewService(orderRepo, carts, catalogRepo, notifier)
	reviewSvc := review.NewService(reviewRepo, orderRepo)

	cartHandler := handler.NewCartHandler(carts, catalogRepo)
	orderHandler := handler.NewOrderHandler(orderSvc)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)
	reviewHandler := handler.NewReviewHandler(reviewSvc)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)
		r.Post("/{productID}", cartHandler.AddItem)
		r.Patch("/{productID}", cartHandler.SetQuantity)
		r.Delete("/{productID}", cartHandler.RemoveItem)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orderHandler.PlaceOrder)
		r.Get("/", orderHandler.ListCustomerOrders)
		r.Get("/tracking", orderHandler.Tracking)
		r.Get("/{orderID}", orderHandler.GetOrder)
		r.Patch("/{orderID}/status", orderHandler.UpdateStatus)
		r.Post("/{orderID}/acknowledge", orderHandler.Acknowledge)
	})

	r.Get("/stall/orders", orderHandler.ListStallOrders)

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", notificationHandler.List)
		r.Post("/{notificationID}/read", notificationHandler.MarkRead)
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Post("/", reviewHandler.Submit)
		r.Get("/", reviewHandler.ListForProduct)
	})

	return r
}
