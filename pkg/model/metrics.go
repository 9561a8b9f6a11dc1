package model

// MicroF1 computes the micro-averaged F1 score: precision and recall over
// true/false positives and false negatives aggregated across all classes.
func MicroF1(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	tp, fp, fn := 0, 0, 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			tp++
		} else {
			fp++
			fn++
		}
	}
	precision := float64(tp) / float64(tp+fp)
	recall := float64(tp) / float64(tp+fn)
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}

// Accuracy is the fraction of matching predictions.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue))
}
