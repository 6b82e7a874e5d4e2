// Package order provides the Order entity and its lifecycle.
//
// An order is created Queued when a client submits it and then moves strictly
// forward through Baking, Stored and OutForDelivery to Delivered. Every
// transition is recorded with its time so the full history of an order can be
// inspected after delivery.
package order
