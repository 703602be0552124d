package registry

// licenseQuery ranks license rows by how tightly their formatted address
// matches: 1 for the full token pattern, 2 for the street-number pattern.
// $1 all patterns, $2 full pattern, $3 street pattern.
const licenseQuery = `
SELECT id, list_format_name, list_format_address, license_id, tbl_license_type, created_at, match_priority
FROM (
	SELECT *,
		CASE
			WHEN UPPER(list_format_address) LIKE $2 THEN 1
			WHEN UPPER(list_format_address) LIKE $3 THEN 2
			ELSE 3
		END AS match_priority
	FROM tobacco_licenses
	WHERE UPPER(list_format_address) LIKE ANY($1)
) AS matches
WHERE match_priority <= 2
ORDER BY match_priority ASC, created_at DESC
LIMIT 5`

// businessQuery ranks corporate registry rows by name: 1 for the full name
// pattern, 2 for the first-two-tokens pattern.
// $1 all patterns, $2 full pattern, $3 partial pattern.
const businessQuery = `
SELECT business_name, business_status, business_type, naics_code, naics_sub_code,
	formation_date, registered_agent_name, registered_agent_physical_address, control_number, match_priority
FROM (
	SELECT *,
		CASE
			WHEN UPPER(business_name) LIKE $2 THEN 1
			WHEN UPPER(business_name) LIKE $3 THEN 2
			ELSE 3
		END AS match_priority
	FROM gsos_business_details
	WHERE UPPER(business_name) LIKE ANY($1)
) AS matches
WHERE match_priority <= 2
ORDER BY match_priority ASC, formation_date DESC
LIMIT 3`

const (
	licenseTable  = "tobacco_licenses"
	businessTable = "gsos_business_details"
)
