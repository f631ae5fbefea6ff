// Package config loads runtime configuration for the sealmsg client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the message courier endpoint
//	-d string   path to the local SQLite database
//	-o string   host:port of the object storage endpoint
//	-b string   object storage bucket for asset content
//	-r string   host:port of the redis instance backing background jobs
//	-t int      request timeout (seconds)
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "30s" or integer nanoseconds:
//
//	{
//	  "courier_endpoint": "https://msg.example.com",
//	  "database_path": "sealmsg.db",
//	  "cache_dir": "cache",
//	  "storage_endpoint": "127.0.0.1:9000",
//	  "storage_access_key": "...",
//	  "storage_secret_key": "...",
//	  "storage_bucket": "sealmsg-assets",
//	  "storage_use_ssl": true,
//	  "redis_addr": "127.0.0.1:6379",
//	  "request_timeout": "30s"
//	}
//
// This package does not read environment variables; use the JSON file or
// flags to configure values.
package config
