package camera

import (
	"fmt"

	"gocv.io/x/gocv"
)

// probeFailureCutoff stops the index scan after this many consecutive
// indices fail to open; device indices are contiguous on every backend
// OpenCV supports, so a short gap means the list is exhausted.
const probeFailureCutoff = 2

// Probe scans device indices [0, maxIndex) and returns descriptors for the
// ones that open and deliver a frame. It never fails: no usable device
// yields an empty slice.
func Probe(maxIndex int) []Descriptor {
	if maxIndex <= 0 {
		maxIndex = 6
	}
	var found []Descriptor
	failures := 0
	for i := 0; i < maxIndex; i++ {
		if !probeIndex(i) {
			failures++
			if failures >= probeFailureCutoff {
				break
			}
			continue
		}
		failures = 0
		label := fmt.Sprintf("Camera %d", i)
		if i == 0 {
			label = "Built-in Camera"
		}
		found = append(found, Descriptor{ID: i, Label: label})
	}
	return found
}

// probeIndex opens the index and confirms one frame can be read.
func probeIndex(i int) bool {
	cam, err := gocv.OpenVideoCapture(i)
	if err != nil {
		return false
	}
	defer cam.Close()
	if !cam.IsOpened() {
		return false
	}
	mat := gocv.NewMat()
	defer mat.Close()
	return cam.Read(&mat) && !mat.Empty()
}
