// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// After the file is parsed, DEBTWATCH_* variables override individual fields
// (e.g. DEBTWATCH_PIPELINE_BATCH_POLICY=per_dataset).
package config
