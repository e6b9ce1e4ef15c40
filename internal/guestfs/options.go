package guestfs

import "os"

// GuestOpenOptions mirrors os.OpenFile flags for the guest filesystem.
// All flags default to false; the fluent setters turn them on.
//
// OpenWithOptions enforces one constraint: create or truncate requires
// write or append.
type GuestOpenOptions struct {
	read     bool
	write    bool
	append   bool
	create   bool
	truncate bool
}

func NewGuestOpenOptions() *GuestOpenOptions {
	return &GuestOpenOptions{}
}

func (o *GuestOpenOptions) Read() *GuestOpenOptions {
	o.read = true
	return o
}

func (o *GuestOpenOptions) Write() *GuestOpenOptions {
	o.write = true
	return o
}

func (o *GuestOpenOptions) Append() *GuestOpenOptions {
	o.append = true
	return o
}

func (o *GuestOpenOptions) Create() *GuestOpenOptions {
	o.create = true
	return o
}

func (o *GuestOpenOptions) Truncate() *GuestOpenOptions {
	o.truncate = true
	return o
}

// hostFlag translates the five guest flags into os.OpenFile flags.
// allowCreate gates O_CREATE: when opening a file the guest tree already
// knows exists, creation has been resolved and must be forced off.
func (o *GuestOpenOptions) hostFlag(allowCreate bool) int {
	var flag int
	switch {
	case o.read && (o.write || o.append):
		flag = os.O_RDWR
	case o.write || o.append:
		flag = os.O_WRONLY
	default:
		flag = os.O_RDONLY
	}
	if o.append {
		flag |= os.O_APPEND
	}
	if o.create && allowCreate {
		flag |= os.O_CREATE
	}
	if o.truncate {
		flag |= os.O_TRUNC
	}
	return flag
}
