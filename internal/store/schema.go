package store

// Table names for the persisted entity data.
const (
	EntityTable   = "tbl_entity"
	CallsignTable = "tbl_callsign"
	CountryTable  = "tbl_country"
)

// createTableSQL mirrors the in-memory Record layout. tbl_entity holds both
// ENTITY and ALIAS rows; tbl_callsign holds the literal "=" callsigns;
// tbl_country joins the country name and DXCC number back in via PRIORITY.
var createTableSQL = []string{
	`CREATE TABLE IF NOT EXISTS tbl_entity (
		TYPE      TEXT NOT NULL,
		PRIORITY  INTEGER NOT NULL,
		ENTITY    TEXT NOT NULL,
		ALIAS     TEXT NOT NULL,
		SUFFIX    TEXT,
		CQZONE    INTEGER,
		ITUZONE   INTEGER,
		CONT      TEXT,
		LAT       REAL,
		LON       REAL,
		GMTOFFSET REAL,
		WAEDC     INTEGER NOT NULL DEFAULT 0
	);`,
	`CREATE INDEX IF NOT EXISTS idx_entity_alias ON tbl_entity (ALIAS);`,
	`CREATE INDEX IF NOT EXISTS idx_entity_priority ON tbl_entity (PRIORITY);`,
	`CREATE TABLE IF NOT EXISTS tbl_callsign (
		CALLSIGN  TEXT NOT NULL,
		PRIORITY  INTEGER NOT NULL,
		ENTITY    TEXT NOT NULL,
		SUFFIX    TEXT,
		CQZONE    INTEGER,
		ITUZONE   INTEGER,
		CONT      TEXT,
		LAT       REAL,
		LON       REAL,
		GMTOFFSET REAL,
		WAEDC     INTEGER NOT NULL DEFAULT 0
	);`,
	`CREATE INDEX IF NOT EXISTS idx_callsign_call ON tbl_callsign (CALLSIGN);`,
	`CREATE TABLE IF NOT EXISTS tbl_country (
		PRIORITY INTEGER PRIMARY KEY,
		DXCC     INTEGER,
		ENTITY   TEXT,
		COUNTRY  TEXT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_country_name ON tbl_country (COUNTRY);`,
}

var dropTableSQL = []string{
	`DROP TABLE IF EXISTS tbl_entity;`,
	`DROP TABLE IF EXISTS tbl_callsign;`,
	`DROP TABLE IF EXISTS tbl_country;`,
}

const (
	insertEntitySQL = `INSERT INTO tbl_entity
		(TYPE, PRIORITY, ENTITY, ALIAS, SUFFIX, CQZONE, ITUZONE, CONT, LAT, LON, GMTOFFSET, WAEDC)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	insertCallsignSQL = `INSERT INTO tbl_callsign
		(CALLSIGN, PRIORITY, ENTITY, SUFFIX, CQZONE, ITUZONE, CONT, LAT, LON, GMTOFFSET, WAEDC)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	insertCountrySQL = `INSERT OR REPLACE INTO tbl_country
		(PRIORITY, DXCC, ENTITY, COUNTRY) VALUES (?, ?, ?, ?)`

	selectEntityBase = `SELECT e.TYPE, e.PRIORITY, e.ENTITY, e.ALIAS, e.SUFFIX,
		e.CQZONE, e.ITUZONE, e.CONT, e.LAT, e.LON, e.GMTOFFSET, e.WAEDC,
		c.COUNTRY, c.DXCC
		FROM tbl_entity e LEFT JOIN tbl_country c ON e.PRIORITY = c.PRIORITY `

	selectCallsignBase = `SELECT 'CALLSIGN', s.PRIORITY, s.ENTITY, s.CALLSIGN, s.SUFFIX,
		s.CQZONE, s.ITUZONE, s.CONT, s.LAT, s.LON, s.GMTOFFSET, s.WAEDC,
		c.COUNTRY, c.DXCC
		FROM tbl_callsign s LEFT JOIN tbl_country c ON s.PRIORITY = c.PRIORITY `
)
