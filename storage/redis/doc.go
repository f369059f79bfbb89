// Package redis implements storage.CheckpointRepository on Redis, for runs
// that share progress across machines.
package redis
