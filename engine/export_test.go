package engine

var PartitionRetries = partitionRetries
