// Package docid valida números de documento de identidad de clientes (DNI y RUC).
package docid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid documento con formato o dígito verificador incorrecto.
var ErrInvalid = errors.New("docid: documento inválido")

// pesos del dígito verificador del RUC, aplicados a los 10 primeros dígitos de izquierda a derecha.
var rucWeights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// prefijos válidos del RUC: persona natural (10, 15, 17) y persona jurídica (20).
var rucPrefixes = []string{"10", "15", "17", "20"}

// Normalize quita espacios, puntos y guiones.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', '-':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

// ValidateDNI exige 8 dígitos.
func ValidateDNI(dni string) error {
	if len(dni) != 8 || !allDigits(dni) {
		return fmt.Errorf("%w: el DNI debe tener 8 dígitos", ErrInvalid)
	}
	return nil
}

// ValidateRUC exige 11 dígitos, un prefijo conocido y dígito verificador módulo 11 correcto.
func ValidateRUC(ruc string) error {
	if len(ruc) != 11 || !allDigits(ruc) {
		return fmt.Errorf("%w: el RUC debe tener 11 dígitos", ErrInvalid)
	}
	if !hasRUCPrefix(ruc) {
		return fmt.Errorf("%w: prefijo de RUC desconocido %q", ErrInvalid, ruc[:2])
	}
	expected, err := ComputeRUCCheckDigit(ruc[:10])
	if err != nil {
		return err
	}
	if ruc[10] != expected {
		return fmt.Errorf("%w: dígito verificador del RUC esperado %c, recibido %c", ErrInvalid, expected, ruc[10])
	}
	return nil
}

// ComputeRUCCheckDigit calcula el dígito verificador para los 10 primeros dígitos del RUC.
func ComputeRUCCheckDigit(base string) (byte, error) {
	if len(base) != 10 || !allDigits(base) {
		return 0, fmt.Errorf("%w: se requieren 10 dígitos, se recibieron %q", ErrInvalid, base)
	}
	var sum int
	for i := 0; i < 10; i++ {
		sum += int(base[i]-'0') * rucWeights[i]
	}
	d := 11 - sum%11
	switch d {
	case 10:
		d = 0
	case 11:
		d = 1
	}
	return byte('0' + d), nil
}

func hasRUCPrefix(ruc string) bool {
	for _, p := range rucPrefixes {
		if strings.HasPrefix(ruc, p) {
			return true
		}
	}
	return false
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
