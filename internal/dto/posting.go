package dto

// PostBatchRequest carries the staged transaction ids to convert into journal
// entries. The whole batch posts atomically.
type PostBatchRequest struct {
	TransactionIDs []string `json:"transactionIDs" binding:"required,min=1"`
}

// PostBatchResponse reports how many transactions were posted and which ids
// were skipped because they were not eligible (already posted, pending,
// rejected, or unknown).
type PostBatchResponse struct {
	Success    bool     `json:"success"`
	Count      int      `json:"count"`
	SkippedIDs []string `json:"skippedIDs"`
}
