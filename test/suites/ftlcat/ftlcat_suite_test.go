package ftlcat_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestFtlcatSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ftlcat Suite")
}
