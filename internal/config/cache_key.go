package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SubmissionKey returns the cache key for a submission looked up by reference number
func (r *CacheKeyStruct) SubmissionKey(referenceNumber string) string {
	return fmt.Sprintf("submission:%s", referenceNumber)
}

var CacheKey = NewCacheKeyStruct()
