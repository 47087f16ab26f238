package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	ConfigBucket   = []byte("config")   // Version and timestamps
	ProfilesBucket = []byte("profiles") // Service name -> JSON Profile
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
)

// SchemaVersion is written to the config bucket on Initialize.
const SchemaVersion = 1

// openTimeout bounds how long Open waits for another process holding the
// database lock.
const openTimeout = 2 * time.Second

var ErrBucketMissing = errors.New("bucket not found")

// Storage provides BBolt-based storage for profiles
type Storage struct {
	db *bolt.DB
}

// Open opens or creates a profile database
func Open(path string) (*Storage, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Initialize creates the bucket structure for a new store
func (s *Storage) Initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, ProfilesBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if err := config.Put(ConfigVersion, []byte(strconv.Itoa(SchemaVersion))); err != nil {
			return err
		}

		created, _ := time.Now().MarshalBinary()
		if err := config.Put(ConfigCreated, created); err != nil {
			return err
		}
		return config.Put(ConfigModified, created)
	})
}

// IsInitialized checks if the database has been initialized
func (s *Storage) IsInitialized() (bool, error) {
	var initialized bool
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config != nil && config.Get(ConfigVersion) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

// touch records a modification time inside an update transaction
func touch(tx *bolt.Tx) error {
	config := tx.Bucket(ConfigBucket)
	if config == nil {
		return fmt.Errorf("config: %w", ErrBucketMissing)
	}
	modified, _ := time.Now().MarshalBinary()
	return config.Put(ConfigModified, modified)
}

// GetModified retrieves the last modified timestamp
func (s *Storage) GetModified() (time.Time, error) {
	var modified time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config: %w", ErrBucketMissing)
		}
		data := config.Get(ConfigModified)
		if data == nil {
			return fmt.Errorf("modified time not found")
		}
		return modified.UnmarshalBinary(data)
	})
	return modified, err
}

// PutProfile stores or replaces the profile for p.Service
func (s *Storage) PutProfile(p *Profile) error {
	if p.Service == "" {
		return fmt.Errorf("profile has no service name")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		profiles := tx.Bucket(ProfilesBucket)
		if profiles == nil {
			return fmt.Errorf("profiles: %w", ErrBucketMissing)
		}
		if err := profiles.Put([]byte(p.Service), data); err != nil {
			return err
		}
		return touch(tx)
	})
}

// GetProfile returns the profile for service, or nil if there is none
func (s *Storage) GetProfile(service string) (*Profile, error) {
	var p *Profile
	err := s.db.View(func(tx *bolt.Tx) error {
		profiles := tx.Bucket(ProfilesBucket)
		if profiles == nil {
			return fmt.Errorf("profiles: %w", ErrBucketMissing)
		}
		data := profiles.Get([]byte(service))
		if data == nil {
			return nil
		}
		p = &Profile{}
		return json.Unmarshal(data, p)
	})
	return p, err
}

// DeleteProfile removes the profile for service. It reports whether a
// profile existed.
func (s *Storage) DeleteProfile(service string) (bool, error) {
	var existed bool
	err := s.db.Update(func(tx *bolt.Tx) error {
		profiles := tx.Bucket(ProfilesBucket)
		if profiles == nil {
			return fmt.Errorf("profiles: %w", ErrBucketMissing)
		}
		if profiles.Get([]byte(service)) == nil {
			return nil
		}
		existed = true
		if err := profiles.Delete([]byte(service)); err != nil {
			return err
		}
		return touch(tx)
	})
	return existed, err
}

// ListProfiles returns all profiles sorted by service name
func (s *Storage) ListProfiles() ([]Profile, error) {
	var list []Profile
	err := s.db.View(func(tx *bolt.Tx) error {
		profiles := tx.Bucket(ProfilesBucket)
		if profiles == nil {
			return fmt.Errorf("profiles: %w", ErrBucketMissing)
		}
		return profiles.ForEach(func(k, v []byte) error {
			var p Profile
			if err := json.Unmarshal(v, &p); err != nil {
				return fmt.Errorf("corrupt profile %q: %w", k, err)
			}
			list = append(list, p)
			return nil
		})
	})
	// bbolt iterates in byte order already; sort anyway so callers do not
	// depend on that.
	sort.Slice(list, func(i, j int) bool { return list[i].Service < list[j].Service })
	return list, err
}

// CountProfiles returns the number of stored profiles
func (s *Storage) CountProfiles() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		profiles := tx.Bucket(ProfilesBucket)
		if profiles == nil {
			return fmt.Errorf("profiles: %w", ErrBucketMissing)
		}
		n = profiles.Stats().KeyN
		return nil
	})
	return n, err
}

// Compact creates a compacted copy of the database, removing unused space.
// This is useful after deleting profiles to reclaim disk space.
func (s *Storage) Compact() error {
	srcPath := s.db.Path()
	tmpPath := srcPath + ".compact"

	// A leftover from an interrupted run would otherwise be merged into the
	// copy and bring deleted profiles back.
	if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale compact database: %w", err)
	}

	dst, err := bolt.Open(tmpPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}

	// Copy all buckets
	err = s.db.View(func(srcTx *bolt.Tx) error {
		return dst.Update(func(dstTx *bolt.Tx) error {
			return srcTx.ForEach(func(name []byte, srcBucket *bolt.Bucket) error {
				dstBucket, err := dstTx.CreateBucketIfNotExists(name)
				if err != nil {
					return err
				}
				return srcBucket.ForEach(func(k, v []byte) error {
					return dstBucket.Put(k, v)
				})
			})
		})
	})

	if err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy data: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	if err := s.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close source database: %w", err)
	}

	// Atomic replace
	backupPath := srcPath + ".backup"
	if err := os.Rename(srcPath, backupPath); err != nil {
		return fmt.Errorf("failed to backup original: %w", err)
	}
	if err := os.Rename(tmpPath, srcPath); err != nil {
		os.Rename(backupPath, srcPath) // rollback
		return fmt.Errorf("failed to replace database: %w", err)
	}
	os.Remove(backupPath)

	s.db, err = bolt.Open(srcPath, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}

	return nil
}
