package config

type WorkerKeyStruct struct {
	SubmissionCreatedQueue string
}

var WorkerKey = &WorkerKeyStruct{
	SubmissionCreatedQueue: "submission_created_queue",
}
