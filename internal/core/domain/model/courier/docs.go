// Package courier provides the Courier entity of the delivery stage.
//
// A Courier is described by its speed and the length of its route; one
// delivery takes ceil(distance / speed) time units. Like a baker, a courier
// carries an atomic busy flag that dispatchers claim with a compare-and-set.
package courier
