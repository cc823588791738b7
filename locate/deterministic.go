package locate

// DeterministicLocator finds the critical value by bisection. The zero value
// is ready to use.
type DeterministicLocator struct {
	// Observer, if set, receives each probe.
	Observer Observer
}

// Locate returns the number of attempts needed to pin down criticalValue in
// [1, totalSize]. A criticalValue of 0 means the item breaks even at the
// lowest position and takes no attempts.
func (l *DeterministicLocator) Locate(totalSize, criticalValue int) (int, error) {
	if err := validate(totalSize, criticalValue); err != nil {
		return 0, err
	}
	if criticalValue == 0 {
		return 0, nil
	}
	r := SearchRange{Low: 1, High: totalSize}
	attempts := 0
	for r.Active() {
		attempts++
		mid := r.Low + (r.High-r.Low)/2
		p := Probe{Variant: VariantDeterministic, Attempt: attempts, Position: mid, Range: r}
		if mid > criticalValue {
			p.Broke = true
			notify(l.Observer, p)
			r.High = mid - 1
			continue
		}
		notify(l.Observer, p)
		if r.Low == r.High {
			break
		}
		r.Low = mid + 1
	}
	return attempts, nil
}

// Locate runs a DeterministicLocator without an observer.
func Locate(totalSize, criticalValue int) (int, error) {
	var l DeterministicLocator
	return l.Locate(totalSize, criticalValue)
}
