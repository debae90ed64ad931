package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dentmarket/internal/domain/entity"
	"dentmarket/internal/domain/repository"
	"dentmarket/pkg/errors"
)

const orderCounterDoc = "orders"

type firestoreOrderRepository struct {
	client *firestore.Client

	// commissionRate is applied inside the placement transaction so the
	// amounts always match the snapshotted line item prices.
	commissionRate float64
}

func NewFirestoreOrderRepository(client *firestore.Client, commissionRate float64) repository.OrderRepository {
	return &firestoreOrderRepository{
		client:         client,
		commissionRate: commissionRate,
	}
}

// Place runs the whole order placement inside one Firestore transaction so
// two concurrent orders against the same product cannot oversell: the stock
// reads and decrements, the sales counters, the supplier stats, the order
// number allocation and the order write commit together or roll back together.
func (r *firestoreOrderRepository) Place(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = r.client.Collection("orders").NewDoc().ID
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		counterRef := r.client.Collection("counters").Doc(orderCounterDoc)
		counterDoc, err := tx.Get(counterRef)

		var next int64 = 1
		if err == nil {
			value, err := counterDoc.DataAt("value")
			if err != nil {
				return err
			}
			next = value.(int64) + 1
		} else if status.Code(err) != codes.NotFound {
			return err
		}

		// All reads must happen before any write in a Firestore transaction.
		type productUpdate struct {
			ref     *firestore.DocumentRef
			product entity.Product
		}
		productUpdates := make([]productUpdate, 0, len(order.Items))

		for i := range order.Items {
			item := &order.Items[i]

			productRef := r.client.Collection("products").Doc(item.ProductID)
			doc, err := tx.Get(productRef)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					return errors.NotFound("Product", err)
				}
				return err
			}

			var product entity.Product
			if err := doc.DataTo(&product); err != nil {
				return err
			}

			if !product.Active {
				return errors.BadRequest(fmt.Sprintf("Product %s is no longer available", product.Name), nil)
			}
			if product.Stock.Quantity < item.Quantity {
				return errors.BadRequest(
					fmt.Sprintf("Insufficient stock for %s. Available: %d", product.Name, product.Stock.Quantity), nil)
			}

			// Snapshot name and price at order time
			item.SupplierID = product.SupplierID
			item.Name = product.Name
			item.Price = product.Price
			item.Subtotal = product.Price * float64(item.Quantity)

			product.Stock.Quantity -= item.Quantity
			product.SalesCount += item.Quantity
			product.UpdatedAt = time.Now()

			productUpdates = append(productUpdates, productUpdate{ref: productRef, product: product})
		}

		for _, pu := range productUpdates {
			if err := tx.Set(pu.ref, pu.product); err != nil {
				return err
			}
		}

		// Supplier stats: sales count and revenue per line item
		perSupplier := make(map[string]struct {
			quantity int
			revenue  float64
		})
		for _, item := range order.Items {
			agg := perSupplier[item.SupplierID]
			agg.quantity += item.Quantity
			agg.revenue += item.Subtotal
			perSupplier[item.SupplierID] = agg
		}

		order.SupplierIDs = order.SupplierIDs[:0]
		for supplierID := range perSupplier {
			order.SupplierIDs = append(order.SupplierIDs, supplierID)
		}
		sort.Strings(order.SupplierIDs)

		order.ProductIDs = order.ProductIDs[:0]
		for _, item := range order.Items {
			order.ProductIDs = append(order.ProductIDs, item.ProductID)
		}

		var subtotal float64
		for _, item := range order.Items {
			subtotal += item.Subtotal
		}
		order.Amounts.Subtotal = subtotal
		order.Amounts.Commission = subtotal * r.commissionRate / 100
		order.Amounts.Total = subtotal + order.Amounts.ShippingFee

		for supplierID, agg := range perSupplier {
			supplierRef := r.client.Collection("users").Doc(supplierID)
			if err := tx.Update(supplierRef, []firestore.Update{
				{Path: "stats.salesCount", Value: firestore.Increment(agg.quantity)},
				{Path: "stats.revenue", Value: firestore.Increment(agg.revenue)},
			}); err != nil {
				return err
			}
		}

		if err := tx.Set(counterRef, map[string]interface{}{"value": next}); err != nil {
			return err
		}

		order.Number = entity.FormatOrderNumber(next)
		now := time.Now()
		order.CreatedAt = now
		order.UpdatedAt = now

		return tx.Set(r.client.Collection("orders").Doc(order.ID), order)
	})

	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return appErr
		}
		return errors.Internal("Failed to place order", err)
	}

	return nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.client.Collection("orders").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Order", err)
		}
		return nil, errors.Internal("Failed to get order", err)
	}

	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}

	return &order, nil
}

func (r *firestoreOrderRepository) ListByBuyerID(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	query := r.client.Collection("orders").
		Where("buyerId", "==", buyerID).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query)
}

func (r *firestoreOrderRepository) ListBySupplierID(ctx context.Context, supplierID string) ([]*entity.Order, error) {
	query := r.client.Collection("orders").
		Where("supplierIds", "array-contains", supplierID).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query)
}

func (r *firestoreOrderRepository) ListAll(ctx context.Context) ([]*entity.Order, error) {
	query := r.client.Collection("orders").OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query)
}

func (r *firestoreOrderRepository) collect(ctx context.Context, query firestore.Query) ([]*entity.Order, error) {
	iter := query.Documents(ctx)
	var orders []*entity.Order

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate orders", err)
		}

		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			return nil, errors.Internal("Failed to parse order data", err)
		}
		orders = append(orders, &order)
	}

	return orders, nil
}

func (r *firestoreOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	order.UpdatedAt = time.Now()

	_, err := r.client.Collection("orders").Doc(order.ID).Set(ctx, order)
	if err != nil {
		return errors.Internal("Failed to update order", err)
	}

	return nil
}

// Cancel restores stock and sales counters for every line item, reverses the
// supplier stats and marks the order cancelled, all in one transaction.
func (r *firestoreOrderRepository) Cancel(ctx context.Context, order *entity.Order, description string) error {
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		orderRef := r.client.Collection("orders").Doc(order.ID)
		doc, err := tx.Get(orderRef)
		if err != nil {
			return err
		}

		var current entity.Order
		if err := doc.DataTo(&current); err != nil {
			return err
		}

		if current.Status == entity.OrderStatusShipped || current.Status == entity.OrderStatusDelivered {
			return errors.BadRequest("Cannot cancel an order that has already been shipped", nil)
		}
		if current.Status == entity.OrderStatusCancelled {
			return errors.BadRequest("Order is already cancelled", nil)
		}

		for _, item := range current.Items {
			productRef := r.client.Collection("products").Doc(item.ProductID)
			if err := tx.Update(productRef, []firestore.Update{
				{Path: "stock.quantity", Value: firestore.Increment(item.Quantity)},
				{Path: "salesCount", Value: firestore.Increment(-item.Quantity)},
			}); err != nil {
				return err
			}

			supplierRef := r.client.Collection("users").Doc(item.SupplierID)
			if err := tx.Update(supplierRef, []firestore.Update{
				{Path: "stats.salesCount", Value: firestore.Increment(-item.Quantity)},
				{Path: "stats.revenue", Value: firestore.Increment(-item.Subtotal)},
			}); err != nil {
				return err
			}
		}

		now := time.Now()
		current.Status = entity.OrderStatusCancelled
		current.History = append(current.History, entity.StatusEntry{
			Status:      entity.OrderStatusCancelled,
			Description: description,
			At:          now,
		})
		current.UpdatedAt = now

		*order = current
		return tx.Set(orderRef, &current)
	})

	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return appErr
		}
		return errors.Internal("Failed to cancel order", err)
	}

	return nil
}

// SaveRating stores the buyer's post-delivery rating and folds the score into
// the rating aggregate of every product and supplier on the order with a
// running average. The order is re-read inside the transaction so two
// concurrent calls cannot both pass the once-per-order gate.
func (r *firestoreOrderRepository) SaveRating(ctx context.Context, order *entity.Order, rating *entity.OrderRating) error {
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		orderRef := r.client.Collection("orders").Doc(order.ID)
		doc, err := tx.Get(orderRef)
		if err != nil {
			return err
		}

		var current entity.Order
		if err := doc.DataTo(&current); err != nil {
			return err
		}

		if current.Status != entity.OrderStatusDelivered {
			return errors.BadRequest("Only delivered orders can be rated", nil)
		}
		if current.Rating != nil {
			return errors.Conflict("This order has already been rated")
		}

		type pending struct {
			ref  *firestore.DocumentRef
			data []firestore.Update
		}
		var writes []pending

		for _, item := range current.Items {
			productRef := r.client.Collection("products").Doc(item.ProductID)
			doc, err := tx.Get(productRef)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					continue
				}
				return err
			}
			var product entity.Product
			if err := doc.DataTo(&product); err != nil {
				return err
			}

			score := runningAverage(product.Rating.Score, product.Rating.Count, rating.Score)
			writes = append(writes, pending{ref: productRef, data: []firestore.Update{
				{Path: "rating.score", Value: score},
				{Path: "rating.count", Value: product.Rating.Count + 1},
			}})
		}

		for _, supplierID := range current.SupplierIDs {
			supplierRef := r.client.Collection("users").Doc(supplierID)
			doc, err := tx.Get(supplierRef)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					continue
				}
				return err
			}
			var supplier entity.User
			if err := doc.DataTo(&supplier); err != nil {
				return err
			}

			score := runningAverage(supplier.Stats.Rating, supplier.Stats.RatingCount, rating.Score)
			writes = append(writes, pending{ref: supplierRef, data: []firestore.Update{
				{Path: "stats.rating", Value: score},
				{Path: "stats.ratingCount", Value: supplier.Stats.RatingCount + 1},
			}})
		}

		for _, w := range writes {
			if err := tx.Update(w.ref, w.data); err != nil {
				return err
			}
		}

		current.Rating = rating
		current.UpdatedAt = time.Now()

		*order = current
		return tx.Set(orderRef, &current)
	})

	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return appErr
		}
		return errors.Internal("Failed to save order rating", err)
	}

	return nil
}

func runningAverage(current float64, count int, added int) float64 {
	return (current*float64(count) + float64(added)) / float64(count+1)
}

func (r *firestoreOrderRepository) CountInFlightBySupplierID(ctx context.Context, supplierID string) (int64, error) {
	inFlight := []string{
		entity.OrderStatusPending,
		entity.OrderStatusConfirmed,
		entity.OrderStatusPreparing,
		entity.OrderStatusShipped,
	}

	query := r.client.Collection("orders").
		Where("supplierIds", "array-contains", supplierID).
		Where("status", "in", inFlight)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count in-flight orders", err)
	}

	return int64(len(docs)), nil
}

func (r *firestoreOrderRepository) HasDeliveredOrderWithProduct(ctx context.Context, buyerID, productID string) (bool, error) {
	query := r.client.Collection("orders").
		Where("buyerId", "==", buyerID).
		Where("status", "==", entity.OrderStatusDelivered).
		Where("productIds", "array-contains", productID).
		Limit(1)

	iter := query.Documents(ctx)
	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, errors.Internal("Failed to query delivered orders", err)
	}

	return true, nil
}
