package service

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"

	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
)

const (
	// payloadVersion is the first byte of every canonical payload.
	payloadVersion byte = 0x01

	// tokenSeparator splits the canonical payload from the signature segment.
	// The standard base64 alphabet of the signature segment never contains it.
	tokenSeparator byte = '_'

	// maxTokenLength bounds the work done on untrusted input.
	maxTokenLength = 8192

	headerSize = 1 + 8
	lengthSize = 4
)

var (
	tokenEncoding     = base64.RawURLEncoding
	signatureEncoding = base64.StdEncoding.Strict()
)

type tokenCodec struct {
	signer Signer
}

// NewTokenCodec creates the canonical token codec.
//
// Canonical payload layout:
//
//	version (1) || issuedAtMillis (8, big-endian) || len-prefixed fields
//
// where every field is a 4-byte big-endian length followed by its bytes, in
// the order nonce, staffId, staffName, sessionDate, period, startTime,
// endTime, courseId, courseName, location, attendanceType, className.
//
// Token layout: base64url_nopad(canonical || '_' || base64std(signature)).
func NewTokenCodec(signer Signer) TokenCodec {
	return &tokenCodec{signer: signer}
}

func payloadFields(p *qrDomain.SessionPayload) []*string {
	m := &p.Metadata
	return []*string{
		&p.Nonce,
		&m.StaffID,
		&m.StaffName,
		&m.SessionDate,
		&m.Period,
		&m.StartTime,
		&m.EndTime,
		&m.CourseID,
		&m.CourseName,
		&m.Location,
		&m.AttendanceType,
		&m.ClassName,
	}
}

// Encode returns the canonical bytes of the payload.
func (c *tokenCodec) Encode(payload *qrDomain.SessionPayload) ([]byte, error) {
	if payload == nil {
		return nil, fmt.Errorf("payload is nil")
	}

	fields := payloadFields(payload)

	size := headerSize
	for _, f := range fields {
		if uint64(len(*f)) > math.MaxUint32 {
			return nil, fmt.Errorf("payload field exceeds %d bytes", uint32(math.MaxUint32))
		}
		size += lengthSize + len(*f)
	}

	buf := make([]byte, 0, size)
	buf = append(buf, payloadVersion)
	buf = binary.BigEndian.AppendUint64(buf, uint64(payload.IssuedAtMillis))
	for _, f := range fields {
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(*f)))
		buf = append(buf, *f...)
	}

	return buf, nil
}

// Decode parses canonical bytes. Unknown versions, truncated or overrunning
// length prefixes and trailing bytes are all ErrTokenMalformed.
func (c *tokenCodec) Decode(canonical []byte) (*qrDomain.SessionPayload, error) {
	if len(canonical) < headerSize {
		return nil, qrDomain.ErrTokenMalformed
	}
	if canonical[0] != payloadVersion {
		return nil, qrDomain.ErrTokenMalformed
	}

	payload := &qrDomain.SessionPayload{
		IssuedAtMillis: int64(binary.BigEndian.Uint64(canonical[1:headerSize])),
	}

	rest := canonical[headerSize:]
	for _, f := range payloadFields(payload) {
		if len(rest) < lengthSize {
			return nil, qrDomain.ErrTokenMalformed
		}
		n := binary.BigEndian.Uint32(rest[:lengthSize])
		rest = rest[lengthSize:]
		if uint64(n) > uint64(len(rest)) {
			return nil, qrDomain.ErrTokenMalformed
		}
		*f = string(rest[:n])
		rest = rest[n:]
	}

	if len(rest) != 0 {
		return nil, qrDomain.ErrTokenMalformed
	}

	return payload, nil
}

// Seal encodes, signs and assembles the token.
func (c *tokenCodec) Seal(secret []byte, payload *qrDomain.SessionPayload) (string, error) {
	canonical, err := c.Encode(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	signature, err := c.signer.Sign(secret, canonical)
	if err != nil {
		return "", fmt.Errorf("failed to sign payload: %w", err)
	}

	encodedSig := signatureEncoding.EncodeToString(signature)

	raw := make([]byte, 0, len(canonical)+1+len(encodedSig))
	raw = append(raw, canonical...)
	raw = append(raw, tokenSeparator)
	raw = append(raw, encodedSig...)

	return tokenEncoding.EncodeToString(raw), nil
}

// Open decodes the outer encoding and splits on the last separator. The
// signature segment is returned decoded; a segment that is not valid base64
// yields ErrTokenBadSignature since it can never match a computed MAC.
func (c *tokenCodec) Open(token string) ([]byte, []byte, error) {
	if token == "" || len(token) > maxTokenLength {
		return nil, nil, qrDomain.ErrTokenMalformed
	}

	raw, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return nil, nil, qrDomain.ErrTokenMalformed
	}

	idx := bytes.LastIndexByte(raw, tokenSeparator)
	if idx < 0 {
		return nil, nil, qrDomain.ErrTokenMalformed
	}

	canonical := raw[:idx]
	signature, err := signatureEncoding.DecodeString(string(raw[idx+1:]))
	if err != nil || len(signature) == 0 {
		return nil, nil, qrDomain.ErrTokenBadSignature
	}

	return canonical, signature, nil
}
