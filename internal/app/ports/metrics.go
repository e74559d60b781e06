package ports

type RoundMetrics interface {
	RecordSuccess(resultCode string)
	RecordConflict()
	RecordFailure()
}
