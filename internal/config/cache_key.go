package config

type CacheKeyStruct struct {
	prefix string
}

func NewCacheKeyStruct(prefix string) *CacheKeyStruct {
	return &CacheKeyStruct{prefix: prefix}
}

// CourseCatalogKey returns the cache key holding the mapped course list.
func (r *CacheKeyStruct) CourseCatalogKey() string {
	return r.prefix + ":courses:catalog"
}

var CacheKey = NewCacheKeyStruct("enroll")
