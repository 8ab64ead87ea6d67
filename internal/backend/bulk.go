package backend

import "cloud.google.com/go/firestore"

// AwaitBulk flushes a bulk writer and surfaces the first write that the
// server rejected. BulkWriter.Set and Delete only validate arguments at
// enqueue time; the real outcome of each write is reported through its
// job after End, and End itself returns nothing.
func AwaitBulk(bw *firestore.BulkWriter, jobs []*firestore.BulkWriterJob) error {
	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return err
		}
	}
	return nil
}
