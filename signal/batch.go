package signal

// Suspender is anything whose signal dispatching can be batched.
type Suspender interface {
	SuspendSignalsDispatching()
	ResumeSignalsDispatching(dispatchAccumulated bool)
}

// SuspendAll suspends every non-nil object, last to first.
func SuspendAll(objs ...Suspender) {
	for i := len(objs) - 1; i >= 0; i-- {
		if objs[i] != nil {
			objs[i].SuspendSignalsDispatching()
		}
	}
}

// ResumeAll resumes every non-nil object, last to first.
func ResumeAll(dispatchAccumulated bool, objs ...Suspender) {
	for i := len(objs) - 1; i >= 0; i-- {
		if objs[i] != nil {
			objs[i].ResumeSignalsDispatching(dispatchAccumulated)
		}
	}
}

// Batch suspends objs, runs cb and resumes them with dispatch.
func Batch(cb func(), objs ...Suspender) {
	SuspendAll(objs...)
	defer ResumeAll(true, objs...)
	cb()
}
