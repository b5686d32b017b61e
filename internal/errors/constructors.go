package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *SitemapError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *SitemapError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration could not be loaded").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *SitemapError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Pipeline errors

func ResolveFailed(root string, cause error) *SitemapError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "page discovery failed").
		WithContext("pages_directory", root)
}

func TransformFailed(cause error) *SitemapError {
	return Wrap(cause, CategoryHook, SeverityFatal, "path map transform failed")
}

func EmitFailed(target string, cause error) *SitemapError {
	return Wrap(cause, CategoryOutput, SeverityFatal, "sitemap could not be written").
		WithContext("target", target)
}

// Internal errors

func InternalError(message string, cause error) *SitemapError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
