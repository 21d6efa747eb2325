package mixed

func BinarySearch(items []int, target int) int {
	low, high := 0, len(items)-1
	for low <= high {
		mid := (low + high) / 2
		if items[mid] == target {
			return mid
		}
		if items[mid] < target {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return -1
}

func SumAll(items []int) int {
	total := 0
	for _, item := range items {
		total += item
	}
	return total
}
