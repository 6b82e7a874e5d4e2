// Package pizzeria runs the order pipeline of a single pizzeria.
//
// An order goes Queued -> Baking -> Stored -> OutForDelivery -> Delivered.
// Two managers drive the pipeline concurrently: the BakerManager hands queued
// orders to free bakers and the CourierManager hands stored pizzas to free
// couriers. The storage between them is bounded, so slow couriers throttle
// the bakers.
//
// Close is the only way to stop the pipeline. After Close no order is
// accepted, and Run returns once every accepted order has been delivered.
package pizzeria
