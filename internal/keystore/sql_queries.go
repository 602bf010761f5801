// SPDX-License-Identifier: Apache-2.0

package keystore

const (
	saveKeyPair = `
		INSERT INTO rsa_keypairs (
			owner_id,
			public_key,
			private_key
		) VALUES ($1, $2, $3)
		ON CONFLICT (owner_id) DO UPDATE SET
			public_key  = excluded.public_key,
			private_key = excluded.private_key;`

	getKeyPair = `
		SELECT
			public_key,
			private_key
		FROM rsa_keypairs
		WHERE owner_id = $1;`

	deleteKeyPair = `
		DELETE FROM rsa_keypairs
		WHERE owner_id = $1;`

	saveBlob = `
		INSERT INTO blobs (
			name,
			value,
			updated_at
		) VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE SET
			value      = excluded.value,
			updated_at = CURRENT_TIMESTAMP;`

	getBlob = `
		SELECT value
		FROM blobs
		WHERE name = $1;`

	deleteBlob = `
		DELETE FROM blobs
		WHERE name = $1;`
)
