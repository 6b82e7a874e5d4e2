// Package storage provides the bounded shelf where baked pizzas wait for couriers.
//
// Storage decouples the baking and delivery stages. Its capacity throttles the
// bakers to the pace of the couriers: when it is full, bakers keep their pizza
// and retry instead of dropping it.
package storage
