package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/justsurfingit/jadarat-dashboard/internal/apperrors"
	"github.com/justsurfingit/jadarat-dashboard/internal/models"
)

// Column positions in the export. The header row in the file is ignored and
// these positions are authoritative.
const (
	colJobTitle = iota
	colPostingDate
	colJobDescription
	colDuties
	colCompanyName
	colEstablishmentNumber
	colCompanyType
	colCompanySize
	colEconomicActivity
	colRequiredQualifications
	colRegion
	colCity
	colBenefits
	colContractType
	colOpenings
	colPostingNumber
	colExperience
	colGender
)

// ReadCSVFile opens path and parses it with ParseCSV.
func ReadCSVFile(path string) ([]models.JobPosting, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.DataLoad("open dataset "+path, err)
	}
	defer file.Close()

	return ParseCSV(bufio.NewReader(file))
}

// ParseCSV reads a Jadarat export. The first record is a header and is
// discarded. Every record must have exactly models.ColumnCount fields.
func ParseCSV(r io.Reader) ([]models.JobPosting, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = models.ColumnCount
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, apperrors.DataLoad("dataset is empty", err)
		}
		return nil, apperrors.DataLoad("read header", err)
	}

	var postings []models.JobPosting
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.DataLoad("read record", err)
		}

		line, _ := reader.FieldPos(0)
		posting, err := parseRecord(rec)
		if err != nil {
			return nil, apperrors.DataLoad(fmt.Sprintf("line %d", line), err)
		}
		postings = append(postings, posting)
	}

	return postings, nil
}

func parseRecord(rec []string) (models.JobPosting, error) {
	experience, err := parseWhole(rec[colExperience])
	if err != nil {
		return models.JobPosting{}, fmt.Errorf("required experience %q: %w", rec[colExperience], err)
	}
	if experience < 0 {
		return models.JobPosting{}, fmt.Errorf("required experience %d is negative", experience)
	}

	openings := 0
	if strings.TrimSpace(rec[colOpenings]) != "" {
		openings, err = parseWhole(rec[colOpenings])
		if err != nil {
			return models.JobPosting{}, fmt.Errorf("number of openings %q: %w", rec[colOpenings], err)
		}
	}

	gender, ok := models.ParseGender(rec[colGender])
	if !ok {
		return models.JobPosting{}, fmt.Errorf("unknown gender %q", rec[colGender])
	}

	return models.JobPosting{
		JobTitle:               strings.TrimSpace(rec[colJobTitle]),
		PostingDate:            strings.TrimSpace(rec[colPostingDate]),
		JobDescription:         rec[colJobDescription],
		Duties:                 rec[colDuties],
		CompanyName:            strings.TrimSpace(rec[colCompanyName]),
		EstablishmentNumber:    strings.TrimSpace(rec[colEstablishmentNumber]),
		CompanyType:            strings.TrimSpace(rec[colCompanyType]),
		CompanySize:            strings.TrimSpace(rec[colCompanySize]),
		EconomicActivity:       strings.TrimSpace(rec[colEconomicActivity]),
		RequiredQualifications: rec[colRequiredQualifications],
		Region:                 strings.TrimSpace(rec[colRegion]),
		City:                   strings.TrimSpace(rec[colCity]),
		Benefits:               rec[colBenefits],
		ContractType:           strings.TrimSpace(rec[colContractType]),
		Openings:               openings,
		PostingNumber:          strings.TrimSpace(rec[colPostingNumber]),
		ExperienceYears:        experience,
		Gender:                 gender,
	}, nil
}

// parseWhole accepts "3" and "3.0" but rejects "3.5".
func parseWhole(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a whole number")
	}
	return int(f), nil
}
