// Package grid maps linear cell indices onto a fixed number of columns.
package grid

// GetGridCoords returns the column and row of cell index.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// Rows is the number of rows needed to hold n cells.
func Rows(n, cols int) int {
	if n <= 0 {
		return 0
	}
	return (n + cols - 1) / cols
}
