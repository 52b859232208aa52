package domain

// KeyPrefix namespaces every key globearc writes to the cache store.
const KeyPrefix = "globearc:"
